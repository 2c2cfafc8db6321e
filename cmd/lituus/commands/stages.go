// Package commands implements CLI command handlers for lituus.
package commands

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/TemporalInept/lituus/pkg/mtgl/lexer"
	"github.com/TemporalInept/lituus/pkg/mtgl/parser"
	"github.com/TemporalInept/lituus/pkg/mtgl/tagger"
)

// stageOptions holds flags shared by the stage-inspection commands.
type stageOptions struct {
	cardName string
	overlay  string
}

func (o *stageOptions) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&o.cardName, "card", "", "card name for self-reference detection")
	cmd.Flags().StringVar(&o.overlay, "overlay", "", "vocabulary overlay YAML file")
}

func (o *stageOptions) tag(line string) (tagger.Text, error) {
	cat, err := buildCatalog(o.overlay)
	if err != nil {
		return tagger.Text{}, err
	}

	tg := tagger.New(cat)

	if o.cardName != "" {
		return tg.TagCard(o.cardName, line), nil
	}

	return tg.Tag(line), nil
}

// NewTagCommand creates the tag subcommand: show tagged spans for one line.
func NewTagCommand() *cobra.Command {
	opts := &stageOptions{}

	cmd := &cobra.Command{
		Use:   "tag <line>",
		Short: "Show tagged spans for one line of oracle text",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := opts.tag(args[0])
			if err != nil {
				return err
			}

			printSpans(cmd.OutOrStdout(), text)

			return nil
		},
	}

	opts.register(cmd)

	return cmd
}

// NewLexCommand creates the lex subcommand: show the token stream.
func NewLexCommand() *cobra.Command {
	opts := &stageOptions{}

	cmd := &cobra.Command{
		Use:   "lex <line>",
		Short: "Show the token stream for one line of oracle text",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := opts.tag(args[0])
			if err != nil {
				return err
			}

			printTokens(cmd.OutOrStdout(), lexer.Tokenize(text))

			return nil
		},
	}

	opts.register(cmd)

	return cmd
}

// NewParseCommand creates the parse subcommand: show recognized clauses.
func NewParseCommand() *cobra.Command {
	opts := &stageOptions{}

	cmd := &cobra.Command{
		Use:   "parse <line>",
		Short: "Show recognized clauses for one line of oracle text",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := opts.tag(args[0])
			if err != nil {
				return err
			}

			tokens := lexer.Tokenize(text)

			clauses, err := parser.New(parser.DefaultRules()).Parse(tokens)
			if err != nil {
				return fmt.Errorf("parse line: %w", err)
			}

			printClauses(cmd.OutOrStdout(), clauses, tokens, 0)

			return nil
		},
	}

	opts.register(cmd)

	return cmd
}

func printSpans(w io.Writer, text tagger.Text) {
	for _, span := range text.Spans {
		attrs := formatAttrs(span.Attrs)
		fmt.Fprintf(w, "%3d-%-3d %-10s %-20q value=%s%s\n",
			span.Start, span.End, span.Category, span.Text, span.Value, attrs)
	}
}

func printTokens(w io.Writer, tokens []lexer.Token) {
	for i, tok := range tokens {
		attrs := formatAttrs(tok.Attrs)

		group := ""
		if tok.Group > 0 {
			group = fmt.Sprintf(" group=%d", tok.Group)
		}

		fmt.Fprintf(w, "%3d  %-10s %-15s col=%d%s%s\n",
			i, tok.Type, tok.Value, tok.Pos.Col, group, attrs)
	}
}

func printClauses(w io.Writer, clauses []*parser.Clause, tokens []lexer.Token, indent int) {
	prefix := strings.Repeat("  ", indent)

	for _, clause := range clauses {
		attrs := formatAttrs(clause.Attrs)
		fmt.Fprintf(w, "%s%-10s [%d,%d) %q%s\n",
			prefix, clause.Kind, clause.Span.Start, clause.Span.End, clause.Text(tokens), attrs)

		printClauses(w, clause.Children, tokens, indent+1)
	}
}

func formatAttrs(attrs map[string]string) string {
	if len(attrs) == 0 {
		return ""
	}

	parts := make([]string, 0, len(attrs))
	for _, k := range sortedKeys(attrs) {
		parts = append(parts, k+"="+attrs[k])
	}

	return " {" + strings.Join(parts, " ") + "}"
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}

	slices.Sort(keys)

	return keys
}
