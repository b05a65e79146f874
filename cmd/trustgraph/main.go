// Command trustgraph runs the PayMo-style fraud-alert loop: build the
// relationship network from a batch of historic payments, then classify a
// stream of live payments into three verdict files, each payment becoming
// history for the ones after it.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/joho/godotenv"
	miniogo "github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/paymolabs/trustgraph"
	"github.com/paymolabs/trustgraph/blobstore"
	"github.com/paymolabs/trustgraph/blobstore/minio"
	"github.com/paymolabs/trustgraph/blobstore/s3"
	"github.com/paymolabs/trustgraph/export"
	"github.com/paymolabs/trustgraph/ingest"
)

func main() {
	if err := run(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "trustgraph:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	// Optional .env next to the binary; flags and the environment win.
	_ = godotenv.Load()

	var (
		batchPath    = flag.String("batch", "paymo_input/batch_payment.csv", "historic batch payment CSV")
		streamPath   = flag.String("stream", "paymo_input/stream_payment.csv", "live stream payment CSV")
		outputDir    = flag.String("output", "paymo_output", "directory for the three verdict files")
		dotPath      = flag.String("dot", "", "write a Graphviz visualization of the final network")
		snapshotName = flag.String("snapshot", "", "write a network snapshot blob with this name")
		storeKind    = flag.String("store", "local", "snapshot store: local, s3 or minio")
		storeRoot    = flag.String("store-root", ".", "root directory (local) or key prefix (s3/minio)")
		capacity     = flag.Int("capacity", 1<<16, "expected number of users")
		logJSON      = flag.Bool("log-json", false, "log in JSON format")
		logLevel     = flag.String("log-level", "info", "log level: debug, info, warn or error")
	)
	flag.Parse()

	logger, err := newLogger(*logJSON, *logLevel)
	if err != nil {
		return err
	}

	metrics := &trustgraph.BasicMetricsCollector{}
	net := trustgraph.New(
		trustgraph.WithLogger(logger),
		trustgraph.WithMetricsCollector(metrics),
		trustgraph.WithInitialCapacity(*capacity),
	)

	withLogger := func(o *ingest.Options) { o.Logger = logger }

	batch, err := os.Open(*batchPath)
	if err != nil {
		return fmt.Errorf("open batch file: %w", err)
	}
	records, err := ingest.LoadBatch(ctx, net, batch, withLogger)
	batch.Close()
	if err != nil {
		return fmt.Errorf("load batch file: %w", err)
	}
	logger.InfoContext(ctx, "batch loaded",
		"records", records,
		"users", net.Users(),
		"edges", net.EdgeCount(),
	)

	stream, err := os.Open(*streamPath)
	if err != nil {
		return fmt.Errorf("open stream file: %w", err)
	}
	defer stream.Close()

	sink, closeSink, err := newTierWriter(*outputDir)
	if err != nil {
		return err
	}

	evaluated, err := ingest.EvaluateStream(ctx, net, stream, sink, withLogger)
	if err != nil {
		closeSink()
		return fmt.Errorf("evaluate stream file: %w", err)
	}
	if err := sink.Flush(); err != nil {
		closeSink()
		return fmt.Errorf("flush verdicts: %w", err)
	}
	if err := closeSink(); err != nil {
		return fmt.Errorf("close verdicts: %w", err)
	}

	stats := metrics.GetStats()
	logger.InfoContext(ctx, "stream processed",
		"payments", evaluated,
		"direct", stats.EvaluateDirect,
		"unreachable", stats.EvaluateUnreached,
		"searches", stats.SearchCount,
		"avg_search_nanos", stats.SearchAvgNanos,
	)

	if *dotPath != "" {
		if err := writeDOT(*dotPath, net); err != nil {
			return fmt.Errorf("write dot file: %w", err)
		}
	}

	if *snapshotName != "" {
		store, err := newStore(ctx, *storeKind, *storeRoot)
		if err != nil {
			return err
		}
		if err := export.WriteSnapshot(ctx, store, *snapshotName, net, func(o *export.SnapshotOptions) {
			o.Logger = logger
		}); err != nil {
			return fmt.Errorf("write snapshot: %w", err)
		}
	}

	return nil
}

func newLogger(jsonFormat bool, level string) (*trustgraph.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("invalid log level %q", level)
	}

	if jsonFormat {
		return trustgraph.NewJSONLogger(lvl), nil
	}
	return trustgraph.NewTextLogger(lvl), nil
}

func newTierWriter(dir string) (*export.TierWriter, func() error, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, nil, fmt.Errorf("create output dir: %w", err)
	}

	var files []*os.File
	closeAll := func() error {
		var firstErr error
		for _, f := range files {
			if err := f.Close(); err != nil && firstErr == nil {
				firstErr = err
			}
		}
		return firstErr
	}

	for _, name := range []string{"output1.txt", "output2.txt", "output3.txt"} {
		f, err := os.Create(filepath.Join(dir, name))
		if err != nil {
			closeAll()
			return nil, nil, fmt.Errorf("create %s: %w", name, err)
		}
		files = append(files, f)
	}

	return export.NewTierWriter(files[0], files[1], files[2]), closeAll, nil
}

func writeDOT(path string, net *trustgraph.Network) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	if err := export.WriteDOT(f, net.Edges()); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// newStore builds the snapshot store. S3 and MinIO read their connection
// settings from the environment (or a .env file): TRUSTGRAPH_S3_BUCKET for
// s3, TRUSTGRAPH_MINIO_ENDPOINT / TRUSTGRAPH_MINIO_BUCKET plus the usual
// MINIO_ACCESS_KEY / MINIO_SECRET_KEY for minio.
func newStore(ctx context.Context, kind, root string) (blobstore.Store, error) {
	switch strings.ToLower(kind) {
	case "local":
		return blobstore.NewLocalStore(root), nil

	case "s3":
		bucket := os.Getenv("TRUSTGRAPH_S3_BUCKET")
		if bucket == "" {
			return nil, fmt.Errorf("s3 store requires TRUSTGRAPH_S3_BUCKET")
		}
		cfg, err := awsconfig.LoadDefaultConfig(ctx)
		if err != nil {
			return nil, fmt.Errorf("load aws config: %w", err)
		}
		return s3.NewStore(awss3.NewFromConfig(cfg), bucket, root), nil

	case "minio":
		endpoint := os.Getenv("TRUSTGRAPH_MINIO_ENDPOINT")
		bucket := os.Getenv("TRUSTGRAPH_MINIO_BUCKET")
		if endpoint == "" || bucket == "" {
			return nil, fmt.Errorf("minio store requires TRUSTGRAPH_MINIO_ENDPOINT and TRUSTGRAPH_MINIO_BUCKET")
		}
		client, err := miniogo.New(endpoint, &miniogo.Options{
			Creds:  credentials.NewEnvMinio(),
			Secure: os.Getenv("TRUSTGRAPH_MINIO_INSECURE") == "",
		})
		if err != nil {
			return nil, fmt.Errorf("minio client: %w", err)
		}
		return minio.NewStore(client, bucket, root), nil

	default:
		return nil, fmt.Errorf("unknown store kind %q", kind)
	}
}
