package cmd

import (
	"encoding/base64"
	"io"
	"os"
	"strconv"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	cmdcommon "boscoin.io/rankchoice/cmd/rankchoice/common"
	"boscoin.io/rankchoice/lib/common"
	"boscoin.io/rankchoice/lib/common/keypair"
	liberrors "boscoin.io/rankchoice/lib/errors"
	"boscoin.io/rankchoice/lib/poll"
	"boscoin.io/rankchoice/lib/storage"
)

var (
	pollCmd      *cobra.Command
	pollGetCmd   *cobra.Command
	pollVotesCmd *cobra.Command

	flagPollStorage string
	flagPollFormat  string
)

type pollView struct {
	ID       uint64 `json:"id" yaml:"id"`
	Proposer string `json:"proposer" yaml:"proposer"`
	NumItems uint8  `json:"num_items" yaml:"num_items"`
	Content  string `json:"content" yaml:"content"`
	Active   bool   `json:"active" yaml:"active"`
}

type votesView struct {
	PollID  uint64 `json:"poll_id" yaml:"poll_id"`
	Voter   string `json:"voter" yaml:"voter"`
	Choices []int  `json:"choices" yaml:"choices"`
}

func init() {
	pollCmd = &cobra.Command{
		Use:   "poll",
		Short: "Read polls from a local storage",
		Run: func(c *cobra.Command, args []string) {
			if len(args) < 1 {
				c.Usage()
			}
		},
	}

	pollGetCmd = &cobra.Command{
		Use:   "get <poll id>",
		Short: "Print a poll",
		Args:  cobra.ExactArgs(1),
		Run: func(c *cobra.Command, args []string) {
			encode, id := parsePollArgs(c, args[0])

			st, err := openPollStorage()
			if err != nil {
				cmdcommon.PrintFlagsError(c, "--storage", err)
			}
			defer st.Close()

			if err := printPoll(st, id, encode, os.Stdout); err != nil {
				cmdcommon.PrintError(c, err)
			}
		},
	}

	pollVotesCmd = &cobra.Command{
		Use:   "votes <poll id> <voter address>",
		Short: "Print the ranked choices of a voter",
		Args:  cobra.ExactArgs(2),
		Run: func(c *cobra.Command, args []string) {
			encode, id := parsePollArgs(c, args[0])
			if !keypair.IsValidAddress(args[1]) {
				cmdcommon.PrintFlagsError(c, "<voter address>", errors.Errorf("invalid address: %q", args[1]))
			}

			st, err := openPollStorage()
			if err != nil {
				cmdcommon.PrintFlagsError(c, "--storage", err)
			}
			defer st.Close()

			if err := printVotes(st, id, args[1], encode, os.Stdout); err != nil {
				cmdcommon.PrintError(c, err)
			}
		},
	}

	flagPollStorage = common.GetENVValue("RANKCHOICE_STORAGE", defaultStorage())

	for _, c := range []*cobra.Command{pollGetCmd, pollVotesCmd} {
		c.Flags().StringVar(&flagPollStorage, "storage", flagPollStorage, "storage uri, {memory://, file:///<path>}")
		c.Flags().StringVar(&flagPollFormat, "format", "prettyjson", "format={json, prettyjson, yaml}")
		pollCmd.AddCommand(c)
	}

	rootCmd.AddCommand(pollCmd)
}

func parsePollArgs(c *cobra.Command, s string) (cmdcommon.Encode, uint64) {
	encode, ok := cmdcommon.DefaultEncodes[flagPollFormat]
	if !ok {
		cmdcommon.PrintFlagsError(c, "--format", errors.Errorf(`"%s" not recognized`, flagPollFormat))
	}

	id, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		cmdcommon.PrintFlagsError(c, "<poll id>", err)
	}

	return encode, id
}

func openPollStorage() (*storage.LevelDBBackend, error) {
	config, err := storage.NewConfigFromString(flagPollStorage)
	if err != nil {
		return nil, err
	}

	return storage.NewStorage(config)
}

func printPoll(st *storage.LevelDBBackend, id uint64, encode cmdcommon.Encode, w io.Writer) error {
	p, found, err := poll.GetPoll(st, id)
	if err != nil {
		return errors.Wrapf(err, "failed to read poll %d", id)
	} else if !found {
		return liberrors.NoSuchPoll.Clone().SetData("poll_id", id)
	}

	return encode(pollView{
		ID:       p.ID,
		Proposer: p.Proposer,
		NumItems: p.NumItems,
		Content:  base64.StdEncoding.EncodeToString(p.Content),
		Active:   p.Active,
	}, w)
}

func printVotes(st *storage.LevelDBBackend, id uint64, voter string, encode cmdcommon.Encode, w io.Writer) error {
	choices, found, err := poll.GetVotes(st, id, voter)
	if err != nil {
		return errors.Wrapf(err, "failed to read votes of poll %d", id)
	} else if !found {
		return liberrors.StorageRecordDoesNotExist.Clone().SetData("poll_id", id).SetData("voter", voter)
	}

	ranks := make([]int, len(choices))
	for i, c := range choices {
		ranks[i] = int(c)
	}

	return encode(votesView{PollID: id, Voter: voter, Choices: ranks}, w)
}
