// Package fileprocessor handles file loading and processing operations
package fileprocessor

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/retroenv/retrochip8/internal/detector"
	"github.com/retroenv/retrochip8/internal/disasm"
	"github.com/retroenv/retrochip8/internal/loader"
	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrogolib/log"
)

// ProcessFile disassembles the input file of the options into the output
// file, or to stdout if no output file is set.
func ProcessFile(logger *log.Logger, opts options.Disassembler) error {
	if _, err := detector.New(logger).Detect(opts.System, opts.Input); err != nil {
		return fmt.Errorf("detecting system: %w", err)
	}

	image, err := loader.New().Load(opts.Input)
	if err != nil {
		return fmt.Errorf("loading ROM: %w", err)
	}

	listing, err := disasm.New(image, disasm.Options{
		HexComments:    !opts.NoHexComments,
		OffsetComments: !opts.NoOffsets,
		ZeroBytes:      opts.ZeroBytes,
	})
	if err != nil {
		return fmt.Errorf("disassembling: %w", err)
	}

	writer, err := createWriter(opts.Output)
	if err != nil {
		return fmt.Errorf("creating writer: %w", err)
	}

	if err := listing.Write(writer); err != nil {
		closeWriter(writer)
		return fmt.Errorf("writing listing: %w", err)
	}
	closeWriter(writer)

	if !opts.Quiet {
		logger.Info("Disassembled ROM",
			log.String("file", opts.Input),
			log.String("output", outputName(opts.Output)),
			log.Int("size", len(image)))
	}
	return nil
}

// GetFilesToProcess returns list of files to process based on options
func GetFilesToProcess(opts *options.Disassembler) ([]string, error) {
	if opts.Batch != "" {
		matches, err := filepath.Glob(opts.Batch)
		if err != nil {
			return nil, fmt.Errorf("globbing batch pattern: %w", err)
		}
		return matches, nil
	}
	return []string{opts.Input}, nil
}

// GenerateOutputFilename generates output filename for a given input file
func GenerateOutputFilename(inputFile string) string {
	ext := filepath.Ext(inputFile)
	return inputFile[:len(inputFile)-len(ext)] + ".asm"
}

func createWriter(output string) (io.Writer, error) {
	if output == "" {
		return os.Stdout, nil
	}

	file, err := os.Create(output)
	if err != nil {
		return nil, fmt.Errorf("creating output file %s: %w", output, err)
	}
	return file, nil
}

func closeWriter(writer io.Writer) {
	if file, ok := writer.(*os.File); ok && file != os.Stdout {
		_ = file.Close()
	}
}

func outputName(output string) string {
	if output == "" {
		return "stdout"
	}
	return output
}
