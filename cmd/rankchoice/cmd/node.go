package cmd

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"time"

	ghandlers "github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	logging "github.com/inconshreveable/log15"
	isatty "github.com/mattn/go-isatty"
	"github.com/oklog/run"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"golang.org/x/net/http2"

	cmdcommon "boscoin.io/rankchoice/cmd/rankchoice/common"
	"boscoin.io/rankchoice/lib/block"
	"boscoin.io/rankchoice/lib/common"
	"boscoin.io/rankchoice/lib/common/keypair"
	"boscoin.io/rankchoice/lib/metrics"
	"boscoin.io/rankchoice/lib/network/api"
	"boscoin.io/rankchoice/lib/network/api/resource"
	"boscoin.io/rankchoice/lib/node/runner"
	"boscoin.io/rankchoice/lib/offchain"
	"boscoin.io/rankchoice/lib/poll"
	"boscoin.io/rankchoice/lib/runtime"
	"boscoin.io/rankchoice/lib/storage"
)

const (
	defaultBindURL   string      = "http://0.0.0.0:12345"
	defaultLogLevel  logging.Lvl = logging.LvlInfo
	metricsURLPrefix string      = "/metrics"
)

var (
	flagKPSecretSeed  string = common.GetENVValue("RANKCHOICE_SECRET_SEED", "")
	flagNetworkID     string = common.GetENVValue("RANKCHOICE_NETWORK_ID", "")
	flagLogLevel      string = common.GetENVValue("RANKCHOICE_LOG_LEVEL", defaultLogLevel.String())
	flagLogOutput     string = common.GetENVValue("RANKCHOICE_LOG_OUTPUT", "")
	flagHTTPLogOutput string = common.GetENVValue("RANKCHOICE_HTTP_LOG_OUTPUT", "")
	flagVerbose       bool   = common.GetENVValue("RANKCHOICE_VERBOSE", "0") == "1"
	flagBindURL       string = common.GetENVValue("RANKCHOICE_BIND", defaultBindURL)
	flagStorage       string
	flagTLSCertFile   string = common.GetENVValue("RANKCHOICE_TLS_CERT", "")
	flagTLSKeyFile    string = common.GetENVValue("RANKCHOICE_TLS_KEY", "")
	flagBlockTime     string = common.GetENVValue("RANKCHOICE_BLOCK_TIME", "5s")
	flagTxsLimit      string = common.GetENVValue("RANKCHOICE_TXS_LIMIT", strconv.Itoa(1000))
	flagOpsLimit      string = common.GetENVValue("RANKCHOICE_OPS_LIMIT", strconv.Itoa(common.MaxOperationsInTransaction))
	flagTxPoolLimit   string = common.GetENVValue("RANKCHOICE_TXPOOL_LIMIT", strconv.Itoa(common.DefaultTxPoolLimit))
	flagAPICacheSize  string = common.GetENVValue("RANKCHOICE_API_CACHE_SIZE", strconv.Itoa(common.DefaultAPICacheSize))
)

var (
	nodeCmd *cobra.Command

	kp            *keypair.Full
	bindURL       *url.URL
	storageConfig *storage.Config
	conf          common.Config
	logLevel      logging.Lvl
	logHandler    logging.Handler
	httpLogWriter io.Writer
	log           logging.Logger = logging.New("module", "main")
)

func init() {
	nodeCmd = &cobra.Command{
		Use:   "node",
		Short: "Run rankchoice node",
		Run: func(c *cobra.Command, args []string) {
			if err := parseFlagsNode(); err != nil {
				cmdcommon.PrintFlagsError(c, err.flag, err.err)
			}

			if err := runNode(); err != nil {
				cmdcommon.PrintError(c, err)
			}
		},
	}

	flagStorage = common.GetENVValue("RANKCHOICE_STORAGE", defaultStorage())

	nodeCmd.Flags().StringVar(&flagKPSecretSeed, "secret-seed", flagKPSecretSeed, "secret seed of the offchain signer; without it the offchain worker submits nothing")
	nodeCmd.Flags().StringVar(&flagNetworkID, "network-id", flagNetworkID, "network id")
	nodeCmd.Flags().StringVar(&flagLogLevel, "log-level", flagLogLevel, "log level, {crit, error, warn, info, debug}")
	nodeCmd.Flags().StringVar(&flagLogOutput, "log-output", flagLogOutput, "set log output file")
	nodeCmd.Flags().StringVar(&flagHTTPLogOutput, "http-log-output", flagHTTPLogOutput, "set http access log output file")
	nodeCmd.Flags().BoolVar(&flagVerbose, "verbose", flagVerbose, "verbose")
	nodeCmd.Flags().StringVar(&flagBindURL, "bind", flagBindURL, "bind to listen on")
	nodeCmd.Flags().StringVar(&flagStorage, "storage", flagStorage, "storage uri, {memory://, file:///<path>}")
	nodeCmd.Flags().StringVar(&flagTLSCertFile, "tls-cert", flagTLSCertFile, "tls certificate file")
	nodeCmd.Flags().StringVar(&flagTLSKeyFile, "tls-key", flagTLSKeyFile, "tls key file")
	nodeCmd.Flags().StringVar(&flagBlockTime, "block-time", flagBlockTime, "block time")
	nodeCmd.Flags().StringVar(&flagTxsLimit, "txs-limit", flagTxsLimit, "transactions limit in a block")
	nodeCmd.Flags().StringVar(&flagOpsLimit, "ops-limit", flagOpsLimit, "operations limit in a transaction")
	nodeCmd.Flags().StringVar(&flagTxPoolLimit, "txpool-limit", flagTxPoolLimit, "transaction pool limit")
	nodeCmd.Flags().StringVar(&flagAPICacheSize, "api-cache-size", flagAPICacheSize, "number of finalized polls cached by the api")

	nodeCmd.MarkFlagRequired("network-id")

	rootCmd.AddCommand(nodeCmd)
}

func defaultStorage() string {
	if currentDirectory, err := os.Getwd(); err == nil {
		if currentDirectory, err = filepath.Abs(currentDirectory); err == nil {
			return fmt.Sprintf("file://%s/db", currentDirectory)
		}
	}

	return "memory://"
}

type flagError struct {
	flag string
	err  error
}

func parseIntFlag(name, value string) (int, *flagError) {
	i, err := strconv.Atoi(value)
	if err != nil {
		return 0, &flagError{name, err}
	}
	if i < 1 {
		return 0, &flagError{name, errors.Errorf("must be greater than 0: %d", i)}
	}

	return i, nil
}

func parseFlagsNode() *flagError {
	var err error

	if len(flagNetworkID) < 1 {
		return &flagError{"--network-id", errors.New("--network-id must be given")}
	}

	kp = nil
	if len(flagKPSecretSeed) > 0 {
		var parsedKP keypair.KP
		if parsedKP, err = keypair.Parse(flagKPSecretSeed); err != nil {
			return &flagError{"--secret-seed", err}
		}

		var ok bool
		if kp, ok = parsedKP.(*keypair.Full); !ok {
			return &flagError{"--secret-seed", errors.New("not a secret seed")}
		}
	}

	if bindURL, err = url.Parse(flagBindURL); err != nil {
		return &flagError{"--bind", err}
	}
	switch bindURL.Scheme {
	case "http":
	case "https":
		if len(flagTLSCertFile) < 1 || len(flagTLSKeyFile) < 1 {
			return &flagError{"--bind", errors.New("https needs --tls-cert and --tls-key")}
		}
		for name, f := range map[string]string{"--tls-cert": flagTLSCertFile, "--tls-key": flagTLSKeyFile} {
			if _, err = os.Stat(f); os.IsNotExist(err) {
				return &flagError{name, err}
			}
		}
	default:
		return &flagError{"--bind", errors.Errorf("unsupported scheme: %q", bindURL.Scheme)}
	}

	if storageConfig, err = storage.NewConfigFromString(flagStorage); err != nil {
		return &flagError{"--storage", err}
	}

	conf = common.NewConfig([]byte(flagNetworkID))
	if conf.BlockTime, err = time.ParseDuration(flagBlockTime); err != nil {
		return &flagError{"--block-time", err}
	} else if conf.BlockTime <= 0 {
		return &flagError{"--block-time", errors.Errorf("must be positive: %s", flagBlockTime)}
	}

	var ferr *flagError
	if conf.TxsLimit, ferr = parseIntFlag("--txs-limit", flagTxsLimit); ferr != nil {
		return ferr
	}
	if conf.OpsLimit, ferr = parseIntFlag("--ops-limit", flagOpsLimit); ferr != nil {
		return ferr
	}
	if conf.TxPoolLimit, ferr = parseIntFlag("--txpool-limit", flagTxPoolLimit); ferr != nil {
		return ferr
	}
	if conf.APICacheSize, ferr = parseIntFlag("--api-cache-size", flagAPICacheSize); ferr != nil {
		return ferr
	}

	if logLevel, err = logging.LvlFromString(flagLogLevel); err != nil {
		return &flagError{"--log-level", err}
	}

	var formatter logging.Format
	if isatty.IsTerminal(os.Stdout.Fd()) {
		formatter = logging.TerminalFormat()
	} else {
		formatter = common.JSONFormat()
	}
	logHandler = logging.StreamHandler(os.Stdout, formatter)

	if len(flagLogOutput) < 1 {
		flagLogOutput = "<stdout>"
	} else {
		if logHandler, err = logging.FileHandler(flagLogOutput, common.JSONFormat()); err != nil {
			return &flagError{"--log-output", err}
		}
	}

	httpLogWriter = os.Stdout
	if len(flagHTTPLogOutput) < 1 {
		flagHTTPLogOutput = "<stdout>"
	} else {
		if httpLogWriter, err = os.OpenFile(flagHTTPLogOutput, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644); err != nil {
			return &flagError{"--http-log-output", err}
		}
	}

	log.SetHandler(logging.LvlFilterHandler(logLevel, logHandler))
	poll.SetLogging(logLevel, logHandler)
	block.SetLogging(logLevel, logHandler)
	runtime.SetLogging(logLevel, logHandler)
	offchain.SetLogging(logLevel, logHandler)
	runner.SetLogging(logLevel, logHandler)
	api.SetLogging(logLevel, logHandler)

	var signer string
	if kp != nil {
		signer = kp.Address()
	}

	log.Info("Starting rankchoice")

	// print flags
	parsedFlags := []interface{}{}
	parsedFlags = append(parsedFlags, "\n\tnetwork-id", flagNetworkID)
	parsedFlags = append(parsedFlags, "\n\tsigner", signer)
	parsedFlags = append(parsedFlags, "\n\tbind", flagBindURL)
	parsedFlags = append(parsedFlags, "\n\tstorage", flagStorage)
	parsedFlags = append(parsedFlags, "\n\ttls-cert", flagTLSCertFile)
	parsedFlags = append(parsedFlags, "\n\ttls-key", flagTLSKeyFile)
	parsedFlags = append(parsedFlags, "\n\tblock-time", conf.BlockTime)
	parsedFlags = append(parsedFlags, "\n\ttxs-limit", conf.TxsLimit)
	parsedFlags = append(parsedFlags, "\n\tops-limit", conf.OpsLimit)
	parsedFlags = append(parsedFlags, "\n\ttxpool-limit", conf.TxPoolLimit)
	parsedFlags = append(parsedFlags, "\n\tapi-cache-size", conf.APICacheSize)
	parsedFlags = append(parsedFlags, "\n\tlog-level", flagLogLevel)
	parsedFlags = append(parsedFlags, "\n\tlog-output", flagLogOutput)
	parsedFlags = append(parsedFlags, "\n\thttp-log-output", flagHTTPLogOutput)

	log.Debug("parsed flags:", parsedFlags...)

	if flagVerbose {
		http2.VerboseLogs = true
	}

	return nil
}

func newKeystore() *offchain.MemoryKeystore {
	keystore := offchain.NewMemoryKeystore()
	if kp != nil {
		keystore.Add(offchain.KeyPurpose, kp)
	}

	return keystore
}

func newHandler(nr *runner.NodeRunner) (http.Handler, error) {
	apiHandler, err := api.NewNetworkHandlerAPI(
		nr.Storage(),
		nr.TransactionPool,
		nr.Conf,
		resource.APIPrefix,
	)
	if err != nil {
		return nil, err
	}

	router := mux.NewRouter()
	router.Handle(metricsURLPrefix, promhttp.Handler()).Methods("GET")

	apiRouter := router.NewRoute().Subrouter()
	apiRouter.Use(ghandlers.CORS(
		ghandlers.AllowedOrigins([]string{"*"}),
		ghandlers.AllowedMethods([]string{"GET", "POST"}),
		ghandlers.AllowedHeaders([]string{"Content-Type", "X-Requested-With", "Cache-Control", "Access-Control"}),
	))
	apiHandler.Routes(apiRouter)

	return ghandlers.CombinedLoggingHandler(httpLogWriter, router), nil
}

func newServer(handler http.Handler) (*http.Server, error) {
	server := &http.Server{
		Addr:              bindURL.Host,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       30 * time.Second,
	}

	if err := http2.ConfigureServer(server, &http2.Server{}); err != nil {
		return nil, errors.Wrap(err, "failed to configure http2")
	}

	return server, nil
}

func runNode() error {
	metrics.InitPrometheusMetrics()
	metrics.SetVersion()

	st, err := storage.NewStorage(storageConfig)
	if err != nil {
		return errors.Wrap(err, "failed to initialize storage")
	}
	defer st.Close()

	nr, err := runner.NewNodeRunner(st, newKeystore(), conf)
	if err != nil {
		return errors.Wrap(err, "failed to create node runner")
	}

	handler, err := newHandler(nr)
	if err != nil {
		return errors.Wrap(err, "failed to create api handler")
	}

	server, err := newServer(handler)
	if err != nil {
		return err
	}

	// Execution group.
	var g run.Group
	{
		g.Add(func() error {
			if err := nr.Start(); err != nil {
				log.Crit("failed to start node", "error", err)
				return err
			}

			<-nr.Done()
			return nil
		}, func(error) {
			nr.Stop()
		})
	}
	{
		g.Add(func() error {
			log.Info("listening", "bind", bindURL.String())

			var err error
			if bindURL.Scheme == "https" {
				err = server.ListenAndServeTLS(flagTLSCertFile, flagTLSKeyFile)
			} else {
				err = server.ListenAndServe()
			}
			if err == http.ErrServerClosed {
				return nil
			}
			return err
		}, func(error) {
			server.Close()
		})
	}
	{
		cancel := make(chan struct{})
		g.Add(func() error {
			return cmdcommon.Interrupt(cancel)
		}, func(error) {
			close(cancel)
		})
	}

	if err := g.Run(); err != nil {
		log.Info("node stopped", "reason", err)
	}

	return nil
}
