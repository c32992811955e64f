// Command planroute is a CLI front end for the same point-to-point
// routing and delivery planning the HTTP API exposes, reproducing
// original_source/src/main.rs's "[MAP-DATA] [DELIVERIES]" usage as two
// Cobra subcommands instead of one fixed positional-argument program.
package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"os"
	"strings"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"courierdispatch/internal/domain"
	"courierdispatch/internal/planner"
	"courierdispatch/internal/router"
	"courierdispatch/internal/streetmap"
)

// Exit codes mirror the core's error taxonomy: success, then the two
// sentinel routing errors, then a fourth kind for a malformed map or
// delivery file that has no equivalent in the core itself.
const (
	exitSuccess  = 0
	exitNoRoute  = 1
	exitBadCoord = 2
	exitParseErr = 3
)

var printer = message.NewPrinter(language.English)

func main() {
	root := &cobra.Command{
		Use:   "planroute",
		Short: "Plan courier routes and delivery runs over a street map",
	}

	root.AddCommand(newRouteCmd(), newPlanCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(exitCodeFor(err))
	}
}

func newRouteCmd() *cobra.Command {
	var mapFile, start, end string

	cmd := &cobra.Command{
		Use:   "route",
		Short: "Find the shortest route between two coordinates",
		RunE: func(cmd *cobra.Command, args []string) error {
			sm, err := loadMap(mapFile)
			if err != nil {
				return err
			}

			startCoord, err := parseLatLon(start)
			if err != nil {
				return fmt.Errorf("parse --start: %w", err)
			}
			endCoord, err := parseLatLon(end)
			if err != nil {
				return fmt.Errorf("parse --end: %w", err)
			}

			rtr := router.New(sm)
			route, miles, err := rtr.Route(cmd.Context(), startCoord, endCoord)
			if err != nil {
				return err
			}

			for _, seg := range route {
				fmt.Printf("%s: %s -> %s\n", seg.Name, seg.Start, seg.End)
			}
			printer.Printf("%.2f miles travelled.\n", miles)

			return nil
		},
	}

	cmd.Flags().StringVar(&mapFile, "map", "", "path to the street map file")
	cmd.Flags().StringVar(&start, "start", "", "start coordinate, \"lat lon\"")
	cmd.Flags().StringVar(&end, "end", "", "end coordinate, \"lat lon\"")
	_ = cmd.MarkFlagRequired("map")
	_ = cmd.MarkFlagRequired("start")
	_ = cmd.MarkFlagRequired("end")

	return cmd
}

func newPlanCmd() *cobra.Command {
	var mapFile, deliveriesFile string
	var seed int64

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Plan a depot round trip over a batch of deliveries",
		RunE: func(cmd *cobra.Command, args []string) error {
			sm, err := loadMap(mapFile)
			if err != nil {
				return err
			}

			depot, deliveries, err := loadDeliveries(deliveriesFile)
			if err != nil {
				return err
			}

			if seed == 0 {
				seed = time.Now().UnixNano()
			}
			rng := rand.New(rand.NewSource(seed))

			rtr := router.New(sm)
			commands, total, err := planner.Plan(cmd.Context(), rtr, depot, deliveries, rng)
			if err != nil {
				return err
			}

			for _, c := range commands {
				fmt.Println(c)
			}
			fmt.Println("You are back at the depot and your deliveries are done!")
			printer.Printf("%.2f miles travelled for all deliveries.\n", total)

			return nil
		},
	}

	cmd.Flags().StringVar(&mapFile, "map", "", "path to the street map file")
	cmd.Flags().StringVar(&deliveriesFile, "deliveries", "", "path to the delivery list file")
	cmd.Flags().Int64Var(&seed, "seed", 0, "optimizer RNG seed (0 picks one from the clock)")
	_ = cmd.MarkFlagRequired("map")
	_ = cmd.MarkFlagRequired("deliveries")

	return cmd
}

// loadMap opens and parses a street map file, showing load progress by
// file size since a large map can take a visible moment to parse.
func loadMap(path string) (*streetmap.StreetMap, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open map file %q: %w", path, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat map file %q: %w", path, err)
	}

	bar := progressbar.DefaultBytes(info.Size(), "loading map")
	defer bar.Close()

	sm, err := streetmap.Load(io.TeeReader(f, bar))
	if err != nil {
		return nil, err
	}

	return sm, nil
}

// loadDeliveries reproduces original_source/src/main.rs::load_deliveries's
// grammar (a "lat lon" depot line, then "lat lon:item" lines) and its
// tolerant-skip behavior on malformed lines: such lines are reported on
// stderr and skipped rather than aborting the whole file.
func loadDeliveries(path string) (domain.Coord, []domain.Delivery, error) {
	f, err := os.Open(path)
	if err != nil {
		return domain.Coord{}, nil, fmt.Errorf("open deliveries file %q: %w", path, err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	if !scanner.Scan() {
		return domain.Coord{}, nil, fmt.Errorf("deliveries file %q: empty file", path)
	}

	depotFields := strings.Fields(scanner.Text())
	if len(depotFields) != 2 {
		return domain.Coord{}, nil, fmt.Errorf("deliveries file %q: depot line must be \"lat lon\"", path)
	}
	depot, err := domain.ParseCoord(depotFields[0], depotFields[1])
	if err != nil {
		return domain.Coord{}, nil, fmt.Errorf("deliveries file %q: bad depot coordinate: %w", path, err)
	}

	var deliveries []domain.Delivery
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}

		if !strings.Contains(line, ":") {
			fmt.Fprintf(os.Stderr, "Missing colon in deliveries - line: %s.\n", line)
			continue
		}

		parts := strings.SplitN(line, ":", 2)
		item := parts[1]
		if item == "" {
			fmt.Fprintf(os.Stderr, "Missing item in deliveries - line: %s\n", line)
			continue
		}

		coordFields := strings.Fields(parts[0])
		if len(coordFields) != 2 {
			fmt.Fprintf(os.Stderr, "Bad formatting in deliveries - line: %s\n", line)
			continue
		}

		loc, err := domain.ParseCoord(coordFields[0], coordFields[1])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Bad coordinate in deliveries - line: %s\n", line)
			continue
		}

		deliveries = append(deliveries, domain.Delivery{Item: item, Location: loc})
	}

	if err := scanner.Err(); err != nil {
		return domain.Coord{}, nil, fmt.Errorf("deliveries file %q: read: %w", path, err)
	}

	return depot, deliveries, nil
}

func parseLatLon(s string) (domain.Coord, error) {
	fields := strings.Fields(s)
	if len(fields) != 2 {
		return domain.Coord{}, fmt.Errorf("expected \"lat lon\", got %q", s)
	}
	return domain.ParseCoord(fields[0], fields[1])
}

func exitCodeFor(err error) int {
	var parseErr *streetmap.ParseError
	switch {
	case errors.As(err, &parseErr):
		return exitParseErr
	case errors.Is(err, domain.ErrBadCoord):
		return exitBadCoord
	case errors.Is(err, domain.ErrNoRoute):
		return exitNoRoute
	default:
		return exitParseErr
	}
}
