package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wikirace/wikirace/internal/engine"
)

var (
	pathStrategy     string
	pathOutputFormat string
)

var pathCmd = &cobra.Command{
	Use:   "path <start> <finish>",
	Short: "Find a hyperlink path between two live Wikipedia articles",
	Long: `Find a hyperlink path between two Wikipedia articles by crawling
en.wikipedia.org live, starting from <start> and searching for <finish>.

Examples:
  wikirace path "Albert Einstein" "Physics"
  wikirace path "Go (programming language)" "Python" --strategy a_star
  wikirace path "Cat" "Dog" --strategy bidirectional --format json`,
	Args: cobra.ExactArgs(2),
	RunE: runPath,
}

func init() {
	rootCmd.AddCommand(pathCmd)

	pathCmd.Flags().StringVarP(&pathStrategy, "strategy", "s", "bfs", "search strategy: bfs, dfs, uniform, a_star, bidirectional")
	pathCmd.Flags().StringVarP(&pathOutputFormat, "format", "f", "text", "output format: text, json")
}

type pathOutput struct {
	Found          bool     `json:"found"`
	Start          string   `json:"start"`
	Finish         string   `json:"finish"`
	Path           []string `json:"path,omitempty"`
	Strategy       string   `json:"strategy"`
	ElapsedSeconds float64  `json:"elapsed_seconds"`
	Discovered     int      `json:"discovered"`
	Error          string   `json:"error,omitempty"`
	Kind           string   `json:"kind,omitempty"`
}

func runPath(cmd *cobra.Command, args []string) error {
	start, finish := args[0], args[1]

	eng, store, err := buildEngine()
	if err != nil {
		return err
	}
	if store != nil {
		defer store.Close()
	}

	metrics, err := buildMetricsSink()
	if err != nil {
		return fmt.Errorf("opening metrics sink: %w", err)
	}
	if closer, ok := metrics.(interface{ Close() error }); ok {
		defer closer.Close()
	}

	res, searchErr := eng.Search(context.Background(), start, finish, engine.Strategy(pathStrategy))

	out := pathOutput{Start: start, Finish: finish, Strategy: pathStrategy}
	if res != nil {
		out.Strategy = string(res.Strategy)
		out.ElapsedSeconds = res.Elapsed.Seconds()
		out.Discovered = res.Discovered
	}

	if searchErr != nil {
		out.Found = false
		out.Error = searchErr.Error()
		if se, ok := searchErr.(*engine.SearchError); ok {
			out.Kind = string(se.Kind)
		}
	} else {
		out.Found = true
		out.Path = res.Path
	}

	switch pathOutputFormat {
	case "json":
		return outputJSON(out)
	default:
		return outputText(out)
	}
}

func outputJSON(out pathOutput) error {
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}

func outputText(out pathOutput) error {
	if !out.Found {
		fmt.Printf("No path found from %q to %q (%s)\n", out.Start, out.Finish, out.Kind)
		fmt.Printf("Discovered %d pages in %.2fs\n", out.Discovered, out.ElapsedSeconds)
		return nil
	}

	fmt.Printf("Path found (%d hops):\n", len(out.Path)-1)
	for i, title := range out.Path {
		if i == 0 {
			fmt.Printf("  %s\n", title)
		} else {
			fmt.Printf("  -> %s\n", title)
		}
	}
	fmt.Println()
	fmt.Printf("Discovered %d pages in %.2fs (%s)\n", out.Discovered, out.ElapsedSeconds, out.Strategy)

	return nil
}
