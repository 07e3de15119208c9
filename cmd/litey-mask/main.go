// Command litey-mask applies the stored NG word list to text read from stdin.
//
//	echo "some note" | litey-mask
//	litey-mask -list
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/litey/litey-go/internal/config"
	"github.com/litey/litey-go/internal/database"
	"github.com/litey/litey-go/internal/ngwords"
	"github.com/litey/litey-go/pkg/logger"
)

func main() {
	list := flag.Bool("list", false, "print the NG word list and exit")
	flag.Parse()

	logger.SetOutput(os.Stderr)
	logger.Init(os.Getenv("LOG_LEVEL"))

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatalf("failed to load config: %v", err)
	}
	if cfg.MongoDB.Backend != "mongo" {
		logger.Fatalf("litey-mask needs STORE_BACKEND=mongo, got %q", cfg.MongoDB.Backend)
	}

	ctx := context.Background()
	client, err := database.ConnectMongo(ctx, cfg.MongoDB)
	if err != nil {
		logger.Fatalf("%v", err)
	}
	defer client.Disconnect(ctx)

	repo, err := ngwords.NewMongoRepository(ctx, client.Database(cfg.MongoDB.Database).Collection("ngs"))
	if err != nil {
		logger.Fatalf("%v", err)
	}
	if err := run(ctx, ngwords.NewService(repo), *list, os.Stdin, os.Stdout); err != nil {
		logger.Fatalf("%v", err)
	}
}

func run(ctx context.Context, svc *ngwords.Service, list bool, in io.Reader, out io.Writer) error {
	if list {
		joined, err := svc.Joined(ctx)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(out, joined)
		return err
	}
	text, err := io.ReadAll(in)
	if err != nil {
		return fmt.Errorf("read stdin: %w", err)
	}
	masked, err := svc.Mask(ctx, string(text))
	if err != nil {
		return err
	}
	_, err = io.WriteString(out, masked)
	return err
}
