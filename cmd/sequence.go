package cmd

import (
	"bytes"
	"fmt"
	"io"
	"math"

	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"

	"github.com/df07/go-shading-core/pkg/core"
)

// Print a range of Halton sequence values, one column per dimension.
func PrintSequence(ctx *cli.Context) error {
	start, count, dims := ctx.Int("start"), ctx.Int("count"), ctx.Int("dims")
	if err := validateSequenceRange(start, count, dims); err != nil {
		return err
	}

	var buf bytes.Buffer
	writeSequenceTable(&buf, uint32(start), count, dims)
	logger.Noticef("halton sequence\n%s", buf.String())
	return nil
}

// validateSequenceRange checks that every index start..start+count-1 is a uint32
func validateSequenceRange(start, count, dims int) error {
	if start < 0 || count <= 0 || dims <= 0 {
		return fmt.Errorf("sequence: start must be >= 0, count and dims > 0 (got %d, %d, %d)", start, count, dims)
	}
	if uint64(start)+uint64(count)-1 > math.MaxUint32 {
		return fmt.Errorf("sequence: indices %d..%d exceed the uint32 sample index range", start, uint64(start)+uint64(count)-1)
	}
	return nil
}

func writeSequenceTable(w io.Writer, start uint32, count, dims int) {
	table := tablewriter.NewWriter(w)
	table.SetAutoFormatHeaders(false)

	header := []string{"Index"}
	for d := 0; d < dims; d++ {
		header = append(header, fmt.Sprintf("dim %d", d))
	}
	table.SetHeader(header)

	for i := 0; i < count; i++ {
		index := start + uint32(i)
		sampler := core.NewHaltonSampler(index, 0)
		row := []string{fmt.Sprintf("%d", index)}
		for d := 0; d < dims; d++ {
			row = append(row, fmt.Sprintf("%.6f", sampler.Get1D()))
		}
		table.Append(row)
	}
	table.Render()
}
