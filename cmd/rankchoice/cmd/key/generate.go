package key

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/template"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"boscoin.io/rankchoice/cmd/rankchoice/common"
	"boscoin.io/rankchoice/lib/common/keypair"
)

var (
	GenerateCmd *cobra.Command

	flagParse  bool
	flagFormat string
)

type keyPair struct {
	Seed    string `json:"seed" yaml:"seed"`
	Address string `json:"address" yaml:"address"`
}

var defaultTemplate = template.Must(template.New("").Parse(`   Secret Seed: {{ .Seed }}
Public Address: {{ .Address }}
`))

func defaultEncode(v interface{}, w io.Writer) error {
	return defaultTemplate.Execute(w, v)
}

func onelineEncode(v interface{}, w io.Writer) error {
	kp := v.(keyPair)
	_, err := fmt.Fprintf(w, "%s %s\n", kp.Seed, kp.Address)
	return err
}

var encoders = map[string]common.Encode{
	"json":       common.DefaultEncodes["json"],
	"prettyjson": common.DefaultEncodes["prettyjson"],
	"yaml":       common.DefaultEncodes["yaml"],
	"default":    defaultEncode,
	"oneline":    onelineEncode,
}

func init() {
	GenerateCmd = &cobra.Command{
		Use:   "generate [<secret seed>]",
		Short: "Generate keypair",
		Run: func(c *cobra.Command, args []string) {
			input := strings.TrimSpace(strings.Join(args, " "))
			if flagParse && len(input) < 1 {
				common.PrintFlagsError(c, "--parse", errors.New("--parse needs <secret seed>"))
			}

			encode, ok := encoders[flagFormat]
			if !ok {
				common.PrintFlagsError(c, "--format", errors.Errorf(`"%s" not recognized`, flagFormat))
			}

			var seed string
			if flagParse {
				seed = input
			}

			kp, err := generateKP(seed)
			if err != nil {
				common.PrintFlagsError(c, "<secret seed>", err)
			}

			if err := encode(keyPair{Seed: kp.Seed(), Address: kp.Address()}, os.Stdout); err != nil {
				common.PrintError(c, err)
			}
		},
	}

	GenerateCmd.Flags().BoolVar(&flagParse, "parse", false, "parse secret seed instead of generating a new one")
	GenerateCmd.Flags().StringVar(&flagFormat, "format", "default", "format={default, json, oneline, prettyjson, yaml}")
}

// generateKP returns a random keypair, or parses `seed` when it is given.
func generateKP(seed string) (*keypair.Full, error) {
	if len(seed) < 1 {
		return keypair.Random(), nil
	}

	kp, err := keypair.Parse(seed)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse secret seed")
	}

	full, ok := kp.(*keypair.Full)
	if !ok {
		return nil, errors.New("not a secret seed")
	}

	return full, nil
}
