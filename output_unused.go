package cssconsolidate

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// WriteUnused writes the outcome of the unused command. Structured formats
// export the report as is, every other format lists one class per line.
func WriteUnused(w io.Writer, report *UnusedReport, format OutputFormat, opts OutputOptions) error {
	switch format {
	case OutputJSON:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(report)

	case OutputYAML:
		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(2)
		if err := encoder.Encode(report); err != nil {
			return err
		}
		return encoder.Close()
	}

	useColors := shouldUseColors(opts.UseColors)
	for _, c := range report.Unused {
		for _, l := range c.Locations {
			location := fmt.Sprintf("%s:%d:", l.File, l.Line)
			fmt.Fprintf(w, "%s unused class .%s\n", RenderStyle(StyleCyan, location, useColors), c.Name)
		}
	}

	fmt.Fprintln(w, "")
	fmt.Fprintf(w, "%s unused (%s defined, %s referenced)\n",
		pluralizeCount(len(report.Unused), "class", "classes"),
		pluralizeCount(report.Defined, "class", "classes"),
		pluralizeCount(report.References, "name", "names"))
	if len(report.DynamicPrefixes) > 0 && format == OutputFull {
		fmt.Fprintln(w, "")
		fmt.Fprintln(w, RenderStyle(StyleGray, "Dynamic prefixes treated as used:", useColors))
		for _, p := range report.DynamicPrefixes {
			fmt.Fprintf(w, "• %s*\n", p)
		}
	}
	return nil
}
