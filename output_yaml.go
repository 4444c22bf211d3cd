package cssconsolidate

import (
	"io"
	"time"

	"gopkg.in/yaml.v3"
)

// WriteYAML writes the result with the same schema as WriteJSON.
func WriteYAML(w io.Writer, result *Result) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(buildExportOutput(result, time.Now())); err != nil {
		return err
	}
	return encoder.Close()
}
