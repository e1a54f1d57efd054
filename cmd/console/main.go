package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/vancomm/minesweeper-board/internal/board"
)

var (
	log = logrus.New()

	width     int
	height    int
	seedFlag  string
	hideMines bool
	verbose   bool
)

func init() {
	flag.IntVar(&width, "width", 10, "board width")
	flag.IntVar(&height, "height", 20, "board height")
	flag.StringVar(&seedFlag, "seed", "", "mine placement seed, random when empty")
	flag.BoolVar(&hideMines, "hide-mines", false, "do not show hidden mines")
	flag.BoolVar(&verbose, "v", false, "debug logging")
}

func parseSeed(s string) (*uint64, error) {
	if s == "" {
		return nil, nil
	}
	seed, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("seed must be an unsigned int: %w", err)
	}
	return &seed, nil
}

// parseIndex only checks the syntax; Reveal panics on an index outside
// the grid.
func parseIndex(line string) (int, error) {
	index, err := strconv.ParseUint(strings.TrimSpace(line), 10, strconv.IntSize-1)
	if err != nil {
		return 0, err
	}
	return int(index), nil
}

func main() {
	flag.Parse()

	log.SetFormatter(&logrus.TextFormatter{ForceColors: true})
	if verbose {
		log.SetLevel(logrus.DebugLevel)
	}

	seed, err := parseSeed(seedFlag)
	if err != nil {
		log.Fatal(err)
	}

	b := board.New(width, height, seed)
	b.Generate()
	log.WithFields(logrus.Fields{
		"width":  width,
		"height": height,
		"seed":   seedFlag,
	}).Debug("board generated")

	fmt.Print(b.Render(!hideMines))

	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		index, err := parseIndex(scanner.Text())
		if err != nil {
			log.Fatalf("invalid cell index %q: %s", scanner.Text(), err)
		}
		state := b.Reveal(index)
		log.WithFields(logrus.Fields{
			"index": index,
			"cell":  state.Cell.String(),
		}).Debug("revealed")
		fmt.Print(b.Render(!hideMines))
	}
	if err := scanner.Err(); err != nil {
		log.Fatal(err)
	}
}
