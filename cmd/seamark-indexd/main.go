// Command seamark-indexd serves a txid snapshot through the Index gRPC
// service, giving the resolver a reference find-by-prefix collaborator.
package main

import (
	"flag"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"google.golang.org/grpc"

	"seamark.dev/seamark/index/grpcindex"
	"seamark.dev/seamark/index/memindex"
)

func main() {
	fs := flag.NewFlagSet("seamark-indexd", flag.ExitOnError)
	listen := fs.String("listen", "127.0.0.1:7780", "listen address")
	snapshot := fs.String("snapshot", "", "txid snapshot file, one 64-char hex id per line")
	pretty := fs.Bool("pretty", false, "human-readable log output")
	_ = fs.Parse(os.Args[1:])

	log := zerolog.New(os.Stderr).With().Timestamp().Logger()
	if *pretty {
		log = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly})
	}

	ix := memindex.New()
	if *snapshot != "" {
		f, err := os.Open(*snapshot)
		if err != nil {
			log.Fatal().Err(err).Msg("opening snapshot")
		}
		n, err := ix.ReadFrom(f)
		_ = f.Close()
		if err != nil {
			log.Fatal().Err(err).Msg("loading snapshot")
		}
		log.Info().Int("txids", n).Str("file", *snapshot).Msg("snapshot loaded")
	}

	lis, err := net.Listen("tcp", *listen)
	if err != nil {
		log.Fatal().Err(err).Msg("listen")
	}

	srv := grpc.NewServer(grpc.UnaryInterceptor(grpcindex.UnaryLoggingInterceptor(log)))
	grpcindex.RegisterIndexServer(srv, &grpcindex.Server{Index: ix})

	done := make(chan os.Signal, 1)
	signal.Notify(done, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-done
		log.Info().Msg("shutting down")
		srv.GracefulStop()
	}()

	log.Info().Str("addr", *listen).Int("indexed", ix.Len()).Msg("serving")
	if err := srv.Serve(lis); err != nil {
		log.Fatal().Err(err).Msg("serve")
	}
}
