package cmd

import (
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	cmdcommon "boscoin.io/rankchoice/cmd/rankchoice/common"
	"boscoin.io/rankchoice/lib/client"
	"boscoin.io/rankchoice/lib/common"
	"boscoin.io/rankchoice/lib/common/keypair"
	"boscoin.io/rankchoice/lib/poll"
	"boscoin.io/rankchoice/lib/transaction"
	"boscoin.io/rankchoice/lib/transaction/operation"
)

var (
	txCmd *cobra.Command

	flagTxEndpoint   string = common.GetENVValue("RANKCHOICE_ENDPOINT", defaultBindURL)
	flagTxSecretSeed string = common.GetENVValue("RANKCHOICE_SECRET_SEED", "")
	flagTxNetworkID  string = common.GetENVValue("RANKCHOICE_NETWORK_ID", "")
	flagTxSequenceID uint64
	flagTxDryRun     bool
	flagTxFormat     string
)

type txOperation struct {
	use   string
	short string
	args  cobra.PositionalArgs
	body  func(args []string) (operation.Body, error)
}

var txOperations = []txOperation{
	{
		use:   "create-poll <number of items> [<content>]",
		short: "Create a poll",
		args:  cobra.RangeArgs(1, 2),
		body: func(args []string) (operation.Body, error) {
			numItems, err := strconv.ParseUint(args[0], 10, 8)
			if err != nil {
				return nil, errors.Wrap(err, "invalid number of items")
			}

			var content []byte
			if len(args) > 1 {
				content = []byte(args[1])
			}

			return operation.NewCreatePoll(uint8(numItems), content), nil
		},
	},
	{
		use:   "cast-vote <poll id> <choices, like 4,1,2>",
		short: "Cast ranked choices to a poll",
		args:  cobra.ExactArgs(2),
		body: func(args []string) (operation.Body, error) {
			id, err := strconv.ParseUint(args[0], 10, 64)
			if err != nil {
				return nil, errors.Wrap(err, "invalid poll id")
			}

			choices, err := parseChoices(args[1])
			if err != nil {
				return nil, err
			}

			return operation.NewCastVote(id, choices), nil
		},
	},
	{
		use:   "finalize-poll <poll id>",
		short: "Finalize a poll; only the proposer can",
		args:  cobra.ExactArgs(1),
		body: func(args []string) (operation.Body, error) {
			id, err := strconv.ParseUint(args[0], 10, 64)
			if err != nil {
				return nil, errors.Wrap(err, "invalid poll id")
			}

			return operation.NewFinalizePoll(id), nil
		},
	},
	{
		use:   "update-latest-value <value>",
		short: "Set the latest value",
		args:  cobra.ExactArgs(1),
		body: func(args []string) (operation.Body, error) {
			v, err := strconv.ParseUint(args[0], 10, 32)
			if err != nil {
				return nil, errors.Wrap(err, "invalid value")
			}

			return operation.NewUpdateLatestValue(uint32(v)), nil
		},
	},
	{
		use:   "increment-latest-value",
		short: "Increase the latest value by one",
		args:  cobra.NoArgs,
		body: func([]string) (operation.Body, error) {
			return operation.IncrementLatestValue{}, nil
		},
	},
}

func init() {
	txCmd = &cobra.Command{
		Use:   "tx",
		Short: "Sign and submit a transaction",
		Run: func(c *cobra.Command, args []string) {
			if len(args) < 1 {
				c.Usage()
			}
		},
	}

	txCmd.PersistentFlags().StringVar(&flagTxEndpoint, "endpoint", flagTxEndpoint, "endpoint of the node")
	txCmd.PersistentFlags().StringVar(&flagTxSecretSeed, "secret-seed", flagTxSecretSeed, "secret seed of the source account")
	txCmd.PersistentFlags().StringVar(&flagTxNetworkID, "network-id", flagTxNetworkID, "network id")
	txCmd.PersistentFlags().Uint64Var(
		&flagTxSequenceID,
		"sequence-id",
		0,
		"sequence id of the transaction; 0 uses the current time in nanoseconds, so repeating a command makes a new transaction. A fixed id repeats the same transaction hash, which the node rejects once executed",
	)
	txCmd.PersistentFlags().BoolVar(&flagTxDryRun, "dry-run", false, "print the signed transaction instead of submitting it")
	txCmd.PersistentFlags().StringVar(&flagTxFormat, "format", "prettyjson", "format={json, prettyjson, yaml}")

	for _, o := range txOperations {
		o := o
		txCmd.AddCommand(&cobra.Command{
			Use:   o.use,
			Short: o.short,
			Args:  o.args,
			Run: func(c *cobra.Command, args []string) {
				body, err := o.body(args)
				if err != nil {
					cmdcommon.PrintFlagsError(c, "<arguments>", err)
				}

				if err := runTx(body, os.Stdout); err != nil {
					cmdcommon.PrintError(c, err)
				}
			},
		})
	}

	rootCmd.AddCommand(txCmd)
}

func parseChoices(s string) (poll.Choices, error) {
	var choices poll.Choices
	for _, item := range strings.Split(s, ",") {
		item = strings.TrimSpace(item)
		if len(item) < 1 {
			continue
		}

		c, err := strconv.ParseUint(item, 10, 8)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid choice: %q", item)
		}
		choices = append(choices, uint8(c))
	}

	return choices, nil
}

func makeTx(body operation.Body) (tx transaction.Transaction, err error) {
	if len(flagTxNetworkID) < 1 {
		err = errors.New("--network-id must be given")
		return
	}

	parsed, err := keypair.Parse(flagTxSecretSeed)
	if err != nil {
		err = errors.Wrap(err, "invalid --secret-seed")
		return
	}
	kp, ok := parsed.(*keypair.Full)
	if !ok {
		err = errors.New("--secret-seed is not a secret seed")
		return
	}

	op, err := operation.NewOperation(body)
	if err != nil {
		return
	}

	if tx, err = transaction.NewTransaction(kp.Address(), txSequenceID(), op); err != nil {
		return
	}

	err = tx.Sign(kp, []byte(flagTxNetworkID))
	return
}

// txSequenceID is `--sequence-id`, or the current time when it is not
// set, so the same operation signed twice gets two hashes.
func txSequenceID() uint64 {
	if flagTxSequenceID != 0 {
		return flagTxSequenceID
	}
	return uint64(time.Now().UnixNano())
}

func runTx(body operation.Body, w io.Writer) error {
	encode, ok := cmdcommon.DefaultEncodes[flagTxFormat]
	if !ok {
		return errors.Errorf(`--format "%s" not recognized`, flagTxFormat)
	}

	tx, err := makeTx(body)
	if err != nil {
		return err
	}

	if err := tx.IsWellFormed(common.NewConfig([]byte(flagTxNetworkID))); err != nil {
		return errors.Wrap(err, "transaction is not well-formed")
	}

	if flagTxDryRun {
		return encode(tx, w)
	}

	c, err := client.NewClient(flagTxEndpoint, nil)
	if err != nil {
		return err
	}
	defer c.Close()

	posted, err := c.SubmitTransaction(tx)
	if err != nil {
		return errors.Wrap(err, "failed to submit transaction")
	}

	return encode(posted, w)
}
