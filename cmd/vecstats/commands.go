package main

import (
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/gravitational/trace"
	"gopkg.in/alecthomas/kingpin.v2"

	"vecstats/interval"
	"vecstats/membership"
	"vecstats/reduce"
	"vecstats/rle"
	"vecstats/source"
	"vecstats/vector"
)

// inputFlags is the shared input selector: a parquet file and column, or
// an inline comma-separated list. "NA" and "nan" entries in an inline
// list mark missing values.
type inputFlags struct {
	file   *string
	column *string
	values *string
}

func addInputFlags(cmd *kingpin.CmdClause) *inputFlags {
	return &inputFlags{
		file:   cmd.Flag("input", "Parquet file path or http(s) URL").Short('i').String(),
		column: cmd.Flag("column", "Column name within the input file").Short('c').String(),
		values: cmd.Flag("values", "Inline comma-separated values instead of a file").String(),
	}
}

func (f *inputFlags) floats() (*vector.Float64Vector, error) {
	if *f.values != "" {
		return parseFloats(*f.values)
	}
	if *f.file == "" || *f.column == "" {
		return nil, trace.BadParameter("either --values or both --input and --column are required")
	}
	src, err := source.Open(*f.file)
	if err != nil {
		return nil, trace.Wrap(err)
	}
	defer src.Close()
	return src.Float64Column(*f.column)
}

func (f *inputFlags) ints() (*vector.Int64Vector, error) {
	if *f.values != "" {
		return parseInts(*f.values)
	}
	if *f.file == "" || *f.column == "" {
		return nil, trace.BadParameter("either --values or both --input and --column are required")
	}
	src, err := source.Open(*f.file)
	if err != nil {
		return nil, trace.Wrap(err)
	}
	defer src.Close()
	return src.Int64Column(*f.column)
}

func parseFloats(list string) (*vector.Float64Vector, error) {
	parts := strings.Split(list, ",")
	values := make([]float64, len(parts))
	for i, p := range parts {
		p = strings.TrimSpace(p)
		if strings.EqualFold(p, "NA") || strings.EqualFold(p, "nan") {
			values[i] = math.NaN()
			continue
		}
		v, err := strconv.ParseFloat(p, 64)
		if err != nil {
			return nil, trace.BadParameter("value %q at position %d is not numeric", p, i)
		}
		values[i] = v
	}
	return vector.NewFloat64Vector(values), nil
}

func parseInts(list string) (*vector.Int64Vector, error) {
	parts := strings.Split(list, ",")
	values := make([]int64, len(parts))
	for i, p := range parts {
		v, err := strconv.ParseInt(strings.TrimSpace(p), 10, 64)
		if err != nil {
			return nil, trace.BadParameter("value %q at position %d is not an integer", p, i)
		}
		values[i] = v
	}
	return vector.NewInt64Vector(values), nil
}

func parseFloatList(list string) ([]float64, error) {
	v, err := parseFloats(list)
	if err != nil {
		return nil, trace.Wrap(err)
	}
	return v.Floats(), nil
}

type commandSet struct {
	rangeCmd    *kingpin.CmdClause
	rangeIn     *inputFlags
	skipMissing *bool

	varCmd  *kingpin.CmdClause
	varIn   *inputFlags
	varSkip *bool

	rleCmd   *kingpin.CmdClause
	rleIn    *inputFlags
	rleOut   *string
	rleCodec *string

	locateCmd    *kingpin.CmdClause
	locateIn     *inputFlags
	locateBreaks *string

	uniqueCmd    *kingpin.CmdClause
	uniqueIn     *inputFlags
	uniqueSorted *bool

	dupCmd *kingpin.CmdClause
	dupIn  *inputFlags

	isinCmd   *kingpin.CmdClause
	isinIn    *inputFlags
	isinTable *string

	tabCmd    *kingpin.CmdClause
	tabIn     *inputFlags
	tabMax    *int
	tabStrict *bool

	groupCmd  *kingpin.CmdClause
	groupIn   *inputFlags
	groupKeys *inputFlags
	groupFn   *string
}

func registerCommands(app *kingpin.Application) *commandSet {
	c := &commandSet{}

	c.rangeCmd = app.Command("range", "Minimum and maximum of a column")
	c.rangeIn = addInputFlags(c.rangeCmd)
	c.skipMissing = c.rangeCmd.Flag("skip-missing", "Exclude missing values from the scan").Bool()

	c.varCmd = app.Command("var", "Sample variance and mean of a column")
	c.varIn = addInputFlags(c.varCmd)
	c.varSkip = c.varCmd.Flag("skip-missing", "Exclude missing values from the scan").Bool()

	c.rleCmd = app.Command("rle", "Run-length encode a column")
	c.rleIn = addInputFlags(c.rleCmd)
	c.rleOut = c.rleCmd.Flag("out", "Write the serialized encoding to this file").String()
	c.rleCodec = c.rleCmd.Flag("codec", "Serialization codec: none, snappy or zstd").Default("none").Enum("none", "snappy", "zstd")

	c.locateCmd = app.Command("locate", "Count breakpoints above each value")
	c.locateIn = addInputFlags(c.locateCmd)
	c.locateBreaks = c.locateCmd.Flag("breaks", "Comma-separated ascending breakpoints").Required().String()

	c.uniqueCmd = app.Command("unique", "Distinct values of a column")
	c.uniqueIn = addInputFlags(c.uniqueCmd)
	c.uniqueSorted = c.uniqueCmd.Flag("sorted", "Sort the distinct values").Bool()

	c.dupCmd = app.Command("duplicated", "Flag repeats of earlier values")
	c.dupIn = addInputFlags(c.dupCmd)

	c.isinCmd = app.Command("isin", "Test membership against a reference list")
	c.isinIn = addInputFlags(c.isinCmd)
	c.isinTable = c.isinCmd.Flag("table", "Comma-separated reference values").Required().String()

	c.tabCmd = app.Command("tabulate", "Count integer keys over [1, max]")
	c.tabIn = addInputFlags(c.tabCmd)
	c.tabMax = c.tabCmd.Flag("max", "Upper bound of the key range").Required().Int()
	c.tabStrict = c.tabCmd.Flag("strict", "Fail on keys outside [1, max] instead of dropping them").Bool()

	c.groupCmd = app.Command("group", "Reduce a column per integer key")
	c.groupIn = addInputFlags(c.groupCmd)
	c.groupKeys = &inputFlags{
		file:   c.groupCmd.Flag("key-input", "Parquet file holding the key column (defaults to --input)").String(),
		column: c.groupCmd.Flag("key-column", "Integer key column name").String(),
		values: c.groupCmd.Flag("keys", "Inline comma-separated integer keys").String(),
	}
	c.groupFn = c.groupCmd.Flag("fn", "Reduction: sum, mean, min or max").Default("sum").Enum("sum", "mean", "min", "max")

	return c
}

func (c *commandSet) run(selected string) error {
	switch selected {
	case c.rangeCmd.FullCommand():
		return c.runRange()
	case c.varCmd.FullCommand():
		return c.runVariance()
	case c.rleCmd.FullCommand():
		return c.runRLE()
	case c.locateCmd.FullCommand():
		return c.runLocate()
	case c.uniqueCmd.FullCommand():
		return c.runUnique()
	case c.dupCmd.FullCommand():
		return c.runDuplicated()
	case c.isinCmd.FullCommand():
		return c.runIsIn()
	case c.tabCmd.FullCommand():
		return c.runTabulate()
	case c.groupCmd.FullCommand():
		return c.runGroup()
	}
	return trace.BadParameter("unknown command %q", selected)
}

func (c *commandSet) runRange() error {
	v, err := c.rangeIn.floats()
	if err != nil {
		return trace.Wrap(err)
	}
	min, max := reduce.Range(v, *c.skipMissing)
	fmt.Printf("min=%v max=%v\n", min, max)
	return nil
}

func (c *commandSet) runVariance() error {
	v, err := c.varIn.floats()
	if err != nil {
		return trace.Wrap(err)
	}
	variance, mean, err := reduce.MeanVariance(v, *c.varSkip)
	if err != nil {
		return trace.Wrap(err)
	}
	fmt.Printf("var=%v mean=%v\n", variance, mean)
	return nil
}

func (c *commandSet) runRLE() error {
	v, err := c.rleIn.floats()
	if err != nil {
		return trace.Wrap(err)
	}
	runs := rle.Encode(v.Floats())
	if *c.rleOut == "" {
		for _, r := range runs {
			fmt.Printf("%v x%d\n", r.Value, r.Length)
		}
		return nil
	}
	codec := map[string]rle.Codec{
		"none":   rle.CodecNone,
		"snappy": rle.CodecSnappy,
		"zstd":   rle.CodecZstd,
	}[*c.rleCodec]
	blob, err := rle.Marshal(runs, codec)
	if err != nil {
		return trace.Wrap(err)
	}
	return trace.Wrap(os.WriteFile(*c.rleOut, blob, 0644))
}

func (c *commandSet) runLocate() error {
	v, err := c.locateIn.floats()
	if err != nil {
		return trace.Wrap(err)
	}
	breaks, err := parseFloatList(*c.locateBreaks)
	if err != nil {
		return trace.Wrap(err)
	}
	out, err := interval.Locate(v.Floats(), breaks)
	if err != nil {
		return trace.Wrap(err)
	}
	fmt.Println(formatInts(out))
	return nil
}

func (c *commandSet) runUnique() error {
	v, err := c.uniqueIn.floats()
	if err != nil {
		return trace.Wrap(err)
	}
	var out []float64
	if *c.uniqueSorted {
		out = membership.UniqueSorted(v.Floats())
	} else {
		out = membership.Unique(v.Floats())
	}
	parts := make([]string, len(out))
	for i, x := range out {
		parts[i] = fmt.Sprintf("%v", x)
	}
	fmt.Println(strings.Join(parts, " "))
	return nil
}

func (c *commandSet) runDuplicated() error {
	v, err := c.dupIn.floats()
	if err != nil {
		return trace.Wrap(err)
	}
	fmt.Println(formatBools(membership.Duplicated(v.Floats())))
	return nil
}

func (c *commandSet) runIsIn() error {
	v, err := c.isinIn.floats()
	if err != nil {
		return trace.Wrap(err)
	}
	table, err := parseFloatList(*c.isinTable)
	if err != nil {
		return trace.Wrap(err)
	}
	fmt.Println(formatBools(membership.IsIn(v.Floats(), table)))
	return nil
}

func (c *commandSet) runTabulate() error {
	v, err := c.tabIn.ints()
	if err != nil {
		return trace.Wrap(err)
	}
	tabulate := reduce.Tabulate
	if *c.tabStrict {
		tabulate = reduce.TabulateStrict
	}
	counts, err := tabulate(v.Values, *c.tabMax)
	if err != nil {
		return trace.Wrap(err)
	}
	parts := make([]string, len(counts))
	for i, n := range counts {
		parts[i] = strconv.FormatInt(n, 10)
	}
	fmt.Println(strings.Join(parts, " "))
	return nil
}

func (c *commandSet) runGroup() error {
	v, err := c.groupIn.floats()
	if err != nil {
		return trace.Wrap(err)
	}
	if *c.groupKeys.file == "" {
		c.groupKeys.file = c.groupIn.file
	}
	keys, err := c.groupKeys.ints()
	if err != nil {
		return trace.Wrap(err)
	}
	fn := map[string]reduce.Reducer{
		"sum":  reduce.Sum,
		"mean": reduce.Mean,
		"min":  reduce.Min,
		"max":  reduce.Max,
	}[*c.groupFn]
	results, err := reduce.GroupReduce(v.Floats(), keys.Values, fn)
	if err != nil {
		return trace.Wrap(err)
	}
	for _, r := range results {
		fmt.Printf("%d\t%v\n", r.Key, r.Value)
	}
	return nil
}

func formatInts(xs []int) string {
	parts := make([]string, len(xs))
	for i, x := range xs {
		parts[i] = strconv.Itoa(x)
	}
	return strings.Join(parts, " ")
}

func formatBools(xs []bool) string {
	parts := make([]string, len(xs))
	for i, x := range xs {
		parts[i] = strconv.FormatBool(x)
	}
	return strings.Join(parts, " ")
}
