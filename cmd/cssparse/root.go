package main

import (
	"fmt"
	"io"
	"os"

	"github.com/gocss/cssparse/css"
	"github.com/gocss/cssparse/internal/events"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	flagStarHack       bool
	flagUnderscoreHack bool
	flagIEFilters      bool
	flagStrict         bool
	flagVerbose        bool
)

var parseCmd = &cobra.Command{
	Use:   "parse [file]",
	Short: "Parse a stylesheet and print its events",
	Long:  "Parse a stylesheet (from a file argument, or stdin when omitted) and print one line per emitted event.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runParse,
}

func init() {
	parseCmd.Flags().BoolVar(&flagStarHack, "star-hack", false, "accept a leading '*' on a property name as a vendor hack marker")
	parseCmd.Flags().BoolVar(&flagUnderscoreHack, "underscore-hack", false, "accept a leading '_' on a property name as a vendor hack marker")
	parseCmd.Flags().BoolVar(&flagIEFilters, "ie-filters", false, "accept IE proprietary progid: filter functions as terms")
	parseCmd.Flags().BoolVar(&flagStrict, "strict", false, "abort on the first syntax error instead of recovering and continuing")
	parseCmd.Flags().BoolVarP(&flagVerbose, "verbose", "v", false, "log recovery/debug traces to stderr")
}

func runParse(cmd *cobra.Command, args []string) error {
	var src io.Reader = os.Stdin
	if len(args) == 1 {
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("open input: %w", err)
		}
		defer f.Close()
		src = f
	}

	input, err := io.ReadAll(src)
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}

	var logger *zap.Logger
	if flagVerbose {
		logger, err = zap.NewDevelopment()
		if err != nil {
			return fmt.Errorf("build logger: %w", err)
		}
	} else {
		logger = zap.NewNop()
	}
	defer logger.Sync()

	engine := css.New(string(input), css.Options{
		StarHack:       flagStarHack,
		UnderscoreHack: flagUnderscoreHack,
		IEFilters:      flagIEFilters,
		Strict:         flagStrict,
		Logger:         logger,
	})

	out := cmd.OutOrStdout()
	sawErrorEvent := false
	engine.AddAnyListener(func(ev events.Event) {
		if ev.Name == events.Error {
			sawErrorEvent = true
		}
		fmt.Fprintln(out, formatEvent(ev))
	})

	if err := engine.ParseStyleSheet(); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "cssparse: %v\n", err)
		os.Exit(1)
	}
	if sawErrorEvent && flagStrict {
		os.Exit(1)
	}
	return nil
}

func formatEvent(ev events.Event) string {
	switch ev.Name {
	case events.Charset:
		return fmt.Sprintf("charset %q", ev.Charset)
	case events.Import:
		return fmt.Sprintf("import %q", ev.URI)
	case events.Namespace:
		return fmt.Sprintf("namespace %q %q", ev.Prefix, ev.URI)
	case events.StartRule:
		return fmt.Sprintf("startrule %v", ev.Selectors)
	case events.Property:
		name := ev.PropertyName.(css.PropertyName)
		value := ev.PropertyValue.(css.PropertyValue)
		return fmt.Sprintf("property %s%s: %s%s", name.Hack, name.Name, value.String(), importantSuffix(ev.Important))
	case events.StartPage:
		return fmt.Sprintf("startpage %q %q", ev.PageID, ev.Pseudo)
	case events.StartPageMargin:
		return fmt.Sprintf("startpagemargin %s", ev.Margin)
	case events.Error:
		return fmt.Sprintf("error %s at %d:%d", ev.Message, ev.Line, ev.Col)
	default:
		return string(ev.Name)
	}
}

func importantSuffix(important bool) string {
	if important {
		return " !important"
	}
	return ""
}
