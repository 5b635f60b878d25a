package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"bloomstack"
	"bloomstack/internal/config"
	"bloomstack/pkg/logger"

	"github.com/spf13/cobra"
)

// App drives the interactive session: one working filter, replaced
// wholesale when a snapshot is loaded.
type App struct {
	filter *bloomstack.BloomFilter
	config *config.Config
	logger logger.Logger
	input  *bufio.Scanner
}

func NewApp(cfg *config.Config) (*App, error) {
	log := logger.New(cfg.Logging.Level, cfg.Logging.Format)

	filter, err := bloomstack.New(
		cfg.Filter.NumLevels,
		cfg.Filter.ArraySize,
		cfg.Filter.NumHashFunctions,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create filter: %w", err)
	}
	log.Info("filter created",
		"levels", cfg.Filter.NumLevels,
		"array_size", cfg.Filter.ArraySize,
		"hash_functions", cfg.Filter.NumHashFunctions,
	)

	return &App{
		filter: filter,
		config: cfg,
		logger: log,
		input:  bufio.NewScanner(os.Stdin),
	}, nil
}

// errInputClosed signals EOF on stdin, which ends the session cleanly.
var errInputClosed = fmt.Errorf("input closed: %w", io.EOF)

// readLine prompts and returns one trimmed line of input.
func (a *App) readLine(prompt string) (string, error) {
	fmt.Print(prompt)
	if !a.input.Scan() {
		if err := a.input.Err(); err != nil {
			return "", err
		}
		return "", errInputClosed
	}
	return strings.TrimSpace(a.input.Text()), nil
}

// readItem re-prompts until the user enters a non-empty string.
func (a *App) readItem(prompt string) (string, error) {
	for {
		item, err := a.readLine(prompt)
		if err != nil {
			return "", err
		}
		if item != "" {
			return item, nil
		}
		fmt.Println("Input cannot be empty. Please enter a valid string.")
	}
}

// readPositiveInt re-prompts until the user enters an integer in [1, max].
func (a *App) readPositiveInt(prompt string, max int) (int, error) {
	for {
		line, err := a.readLine(prompt)
		if err != nil {
			return 0, err
		}
		n, err := strconv.Atoi(line)
		if err != nil || n <= 0 {
			fmt.Println("Please enter a positive integer.")
			continue
		}
		if n > max {
			fmt.Printf("Value must be between 1 and %d.\n", max)
			continue
		}
		return n, nil
	}
}

func (a *App) insertItem() error {
	item, err := a.readItem("Enter item to insert: ")
	if err != nil {
		return err
	}
	a.filter.Insert(item)
	a.logger.Info("item inserted", "item", item)
	fmt.Println("Item inserted successfully.")
	return nil
}

func (a *App) queryItem() error {
	item, err := a.readItem("Enter item to query: ")
	if err != nil {
		return err
	}
	numLevels := a.filter.NumLevels()
	levelsToSearch, err := a.readPositiveInt(
		fmt.Sprintf("Enter number of levels to search (1-%d): ", numLevels),
		numLevels,
	)
	if err != nil {
		return err
	}
	if a.filter.Query(item, levelsToSearch) {
		fmt.Println("Item may be present.")
	} else {
		fmt.Println("Item is not present.")
	}
	return nil
}

func (a *App) saveFilter() error {
	path, err := a.readItem(fmt.Sprintf("Enter filepath to save to (e.g. %s): ", a.config.Snapshot.Path))
	if err != nil {
		return err
	}
	if err := a.filter.Save(path); err != nil {
		a.logger.Error("failed to save filter", "path", path, "error", err)
		fmt.Printf("Failed to save filter: %v\n", err)
		return nil
	}
	a.logger.Info("filter saved", "path", path)
	fmt.Println("Filter saved successfully.")
	return nil
}

func (a *App) loadFilter() error {
	path, err := a.readItem(fmt.Sprintf("Enter filepath to load from (e.g. %s): ", a.config.Snapshot.Path))
	if err != nil {
		return err
	}
	loaded, err := bloomstack.Load(path)
	if err != nil {
		a.logger.Error("failed to load filter", "path", path, "error", err)
		fmt.Printf("Failed to load filter: %v\n", err)
		return nil
	}
	a.filter = loaded
	a.logger.Info("filter loaded", "path", path, "levels", loaded.NumLevels())
	fmt.Println("Filter loaded successfully.")
	return nil
}

// Run loops over the operation menu until the user exits or stdin closes.
func (a *App) Run() error {
	fmt.Println("Welcome to the bloomstack CLI!")
	for {
		fmt.Println()
		fmt.Println("Choose an operation:")
		fmt.Println("  1) Insert item")
		fmt.Println("  2) Query item")
		fmt.Println("  3) Save filter")
		fmt.Println("  4) Load filter")
		fmt.Println("  5) Exit")

		choice, err := a.readLine("> ")
		if err != nil {
			if errors.Is(err, io.EOF) {
				fmt.Println("Goodbye!")
				return nil
			}
			return err
		}

		var opErr error
		switch choice {
		case "1":
			opErr = a.insertItem()
		case "2":
			opErr = a.queryItem()
		case "3":
			opErr = a.saveFilter()
		case "4":
			opErr = a.loadFilter()
		case "5":
			fmt.Println("Goodbye!")
			return nil
		default:
			fmt.Println("Invalid choice. Please try again.")
		}
		if opErr != nil {
			if errors.Is(opErr, io.EOF) {
				fmt.Println("Goodbye!")
				return nil
			}
			return opErr
		}
	}
}

func main() {
	var (
		configPath       string
		numLevels        int
		arraySize        int
		numHashFunctions int
	)

	rootCmd := &cobra.Command{
		Use:   "bloomstack",
		Short: "Interactive layered bloom filter",
		Long: "bloomstack maintains a stack of bloom filter levels sharing one hash\n" +
			"family, with fan-out insert, bounded-depth query, and JSON snapshots.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			if cmd.Flags().Changed("levels") {
				cfg.Filter.NumLevels = numLevels
			}
			if cmd.Flags().Changed("array-size") {
				cfg.Filter.ArraySize = arraySize
			}
			if cmd.Flags().Changed("hash-functions") {
				cfg.Filter.NumHashFunctions = numHashFunctions
			}

			app, err := NewApp(cfg)
			if err != nil {
				return err
			}
			return app.Run()
		},
	}

	rootCmd.Flags().StringVar(&configPath, "config", "bloomstack.yaml", "Path to config file")
	rootCmd.Flags().IntVar(&numLevels, "levels", bloomstack.DefaultNumLevels, "Number of filter levels")
	rootCmd.Flags().IntVar(&arraySize, "array-size", bloomstack.DefaultArraySize, "Bits per level")
	rootCmd.Flags().IntVar(&numHashFunctions, "hash-functions", bloomstack.DefaultNumHashFunctions,
		fmt.Sprintf("Hash functions to use (1-%d)", bloomstack.MaxHashFunctions))

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
