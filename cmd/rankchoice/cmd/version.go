package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	cmdcommon "boscoin.io/rankchoice/cmd/rankchoice/common"
	"boscoin.io/rankchoice/lib/version"
)

var flagVersionFormat string = "text"

func init() {
	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print the version of the node and the build",
		Run: func(c *cobra.Command, args []string) {
			if err := runVersion(os.Stdout); err != nil {
				cmdcommon.PrintFlagsError(c, "--format", err)
			}
		},
	}
	versionCmd.Flags().StringVar(&flagVersionFormat, "format", flagVersionFormat, "output format, 'text', 'json', 'prettyjson' or 'yaml'")

	rootCmd.AddCommand(versionCmd)
}

func runVersion(w io.Writer) error {
	if flagVersionFormat == "text" {
		_, err := fmt.Fprintln(w, version.ToDetailVersion())
		return err
	}

	encode, ok := cmdcommon.DefaultEncodes[flagVersionFormat]
	if !ok {
		return errors.Errorf("format %q not recognized", flagVersionFormat)
	}

	return encode(version.GetDetail(), w)
}
