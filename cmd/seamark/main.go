// Command seamark is the protocol CLI: it encodes and decodes embedded
// messages, inspects carrier fit and fee projections, and resolves
// anchors against an index service.
package main

import (
	"context"
	"encoding/hex"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"seamark.dev/seamark/body"
	"seamark.dev/seamark/carrier"
	"seamark.dev/seamark/index"
	"seamark.dev/seamark/index/grpcindex"
	"seamark.dev/seamark/msgid"
	"seamark.dev/seamark/resolve"
	"seamark.dev/seamark/wire"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, in io.Reader, out, errOut io.Writer) int {
	if len(args) == 0 {
		printUsage(errOut)
		return 2
	}

	switch args[0] {
	case "encode":
		return cmdEncode(args[1:], in, out, errOut)
	case "decode":
		return cmdDecode(args[1:], in, out, errOut)
	case "carriers":
		return cmdCarriers(args[1:], out, errOut)
	case "estimate":
		return cmdEstimate(args[1:], out, errOut)
	case "resolve":
		return cmdResolve(args[1:], in, out, errOut)
	case "msg-cid":
		return cmdMsgCID(args[1:], in, out, errOut)
	case "help", "-h", "--help":
		printUsage(out)
		return 0
	default:
		fmt.Fprintf(errOut, "unknown command: %s\n\n", args[0])
		printUsage(errOut)
		return 2
	}
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "seamark: embedded-message codec and anchor tooling")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  seamark encode --kind <n> [--anchor <prefix16hex>:<vout>]... [--text <s> | --body <file>] [--out <file>]")
	fmt.Fprintln(w, "  seamark decode [--hex] [<file>]")
	fmt.Fprintln(w, "  seamark carriers [--config <toml>]")
	fmt.Fprintln(w, "  seamark estimate --size <bytes> [--anchors <n>] [--rate <fee-rate>] [--config <toml>]")
	fmt.Fprintln(w, "  seamark resolve --index <addr> [--ttl <dur>] [--hex] [<file>]")
	fmt.Fprintln(w, "  seamark msg-cid [--hex] [<file>]")
}

type anchorList []wire.Anchor

func (a *anchorList) String() string { return fmt.Sprintf("%d anchors", len(*a)) }

func (a *anchorList) Set(s string) error {
	prefixHex, voutStr, ok := strings.Cut(s, ":")
	if !ok {
		return errors.New("anchor must be <prefix16hex>:<vout>")
	}
	raw, err := hex.DecodeString(prefixHex)
	if err != nil || len(raw) != wire.PrefixLen {
		return fmt.Errorf("anchor prefix must be %d hex bytes", wire.PrefixLen)
	}
	vout, err := strconv.ParseUint(voutStr, 10, 8)
	if err != nil {
		return errors.New("anchor vout must be 0-255")
	}
	var anchor wire.Anchor
	copy(anchor.TxPrefix[:], raw)
	anchor.Vout = uint8(vout)
	*a = append(*a, anchor)
	return nil
}

func cmdEncode(args []string, in io.Reader, out, errOut io.Writer) int {
	fs := flag.NewFlagSet("encode", flag.ContinueOnError)
	fs.SetOutput(errOut)
	kind := fs.Uint("kind", uint(body.KindText), "message kind")
	text := fs.String("text", "", "text body (kind 1 convenience)")
	bodyFile := fs.String("body", "", "file holding the raw encoded body ('-' for stdin)")
	outFile := fs.String("out", "", "write binary message to file instead of hex to stdout")
	var anchors anchorList
	fs.Var(&anchors, "anchor", "parent reference <prefix16hex>:<vout> (repeatable)")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if *kind > 255 {
		fmt.Fprintln(errOut, "kind must be 0-255")
		return 2
	}

	var bodyBytes []byte
	switch {
	case *text != "" && *bodyFile != "":
		fmt.Fprintln(errOut, "--text and --body are mutually exclusive")
		return 2
	case *text != "":
		var err error
		bodyBytes, err = body.Default().Encode(body.Text{Value: *text})
		if err != nil {
			fmt.Fprintln(errOut, err)
			return 1
		}
	case *bodyFile != "":
		var err error
		bodyBytes, err = readInput(*bodyFile, in)
		if err != nil {
			fmt.Fprintln(errOut, err)
			return 1
		}
	}

	raw, err := wire.Encode(uint8(*kind), anchors, bodyBytes)
	if err != nil {
		fmt.Fprintln(errOut, err)
		return 1
	}

	table := carrier.DefaultTable()
	rec := table.Recommend(len(bodyBytes), len(anchors))
	if err := carrier.Validate(rec, len(bodyBytes), len(anchors)); err != nil {
		fmt.Fprintln(errOut, err)
		return 1
	}

	if *outFile != "" {
		if err := os.WriteFile(*outFile, raw, 0o644); err != nil {
			fmt.Fprintln(errOut, err)
			return 1
		}
	} else {
		fmt.Fprintln(out, hex.EncodeToString(raw))
	}
	fmt.Fprintf(errOut, "msg-cid: %s\n", msgid.String(raw))
	fmt.Fprintf(errOut, "carrier: %s (%d bytes, fee ~%d at rate 1)\n",
		rec.Name, len(raw), carrier.Estimate(rec, len(raw), 1))
	return 0
}

func cmdDecode(args []string, in io.Reader, out, errOut io.Writer) int {
	fs := flag.NewFlagSet("decode", flag.ContinueOnError)
	fs.SetOutput(errOut)
	hexIn := fs.Bool("hex", false, "input is hex encoded")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	raw, err := readMessageBytes(fs.Args(), *hexIn, in)
	if err != nil {
		fmt.Fprintln(errOut, err)
		return 1
	}
	msg, err := wire.Decode(raw)
	if err != nil {
		fmt.Fprintln(errOut, err)
		return 1
	}

	fmt.Fprintf(out, "msg-cid: %s\n", msgid.String(raw))
	fmt.Fprintf(out, "kind: %d\n", msg.Kind)
	fmt.Fprintf(out, "anchors: %d\n", len(msg.Anchors))
	for i, a := range msg.Anchors {
		fmt.Fprintf(out, "  [%d] %x:%d\n", i, a.TxPrefix, a.Vout)
	}
	fmt.Fprintf(out, "body: %d bytes\n", len(msg.Body))

	payload, err := body.Default().Decode(msg.Kind, msg.Body)
	if err != nil {
		// The envelope stayed valid; only the body interpretation failed.
		fmt.Fprintf(errOut, "body decode: %v\n", err)
		return 1
	}
	describePayload(out, payload)
	return 0
}

func describePayload(out io.Writer, payload body.Payload) {
	switch p := payload.(type) {
	case body.Text:
		fmt.Fprintf(out, "text: %q\n", p.Value)
	case body.State:
		fmt.Fprintf(out, "state: %d records\n", len(p.Records))
	case body.Token:
		fmt.Fprintf(out, "token: %s", p.Op)
		for _, amt := range p.Amounts {
			fmt.Fprintf(out, " %s", amt)
		}
		fmt.Fprintln(out)
	case body.Proof:
		fmt.Fprintf(out, "proof: %d entries\n", len(p.Entries))
		for i, e := range p.Entries {
			fmt.Fprintf(out, "  [%d] %s %x\n", i, e.Alg, e.Digest)
		}
	case body.Opaque:
		fmt.Fprintf(out, "opaque body (no codec for kind %d)\n", p.RawKind)
	}
}

func loadTable(path string, errOut io.Writer) (*carrier.Table, bool) {
	if path == "" {
		return carrier.DefaultTable(), true
	}
	t, err := carrier.Load(path)
	if err != nil {
		fmt.Fprintln(errOut, err)
		return nil, false
	}
	return t, true
}

func cmdCarriers(args []string, out, errOut io.Writer) int {
	fs := flag.NewFlagSet("carriers", flag.ContinueOnError)
	fs.SetOutput(errOut)
	config := fs.String("config", "", "carrier table TOML file")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	table, ok := loadTable(*config, errOut)
	if !ok {
		return 1
	}
	for _, c := range table.Carriers() {
		prune := "unprunable"
		if c.Prunable {
			prune = "prunable"
		}
		fmt.Fprintf(out, "%d\t%s\tmax %d bytes\tweight %g\t%s\n", c.ID, c.Name, c.MaxBytes, c.FeeWeight, prune)
	}
	return 0
}

func cmdEstimate(args []string, out, errOut io.Writer) int {
	fs := flag.NewFlagSet("estimate", flag.ContinueOnError)
	fs.SetOutput(errOut)
	size := fs.Int("size", 0, "encoded body size in bytes")
	anchorCount := fs.Int("anchors", 0, "anchor count")
	rate := fs.Float64("rate", 1, "fee rate (fee units per byte)")
	config := fs.String("config", "", "carrier table TOML file")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if *size < 0 || *anchorCount < 0 || *anchorCount > wire.MaxAnchors {
		fmt.Fprintln(errOut, "invalid size or anchor count")
		return 2
	}
	table, ok := loadTable(*config, errOut)
	if !ok {
		return 1
	}

	total := *size + wire.Overhead(*anchorCount)
	rec := table.Recommend(*size, *anchorCount)
	for _, c := range table.Carriers() {
		mark := " "
		if c.ID == rec.ID {
			mark = "*"
		}
		if !carrier.Fits(c, total) {
			fmt.Fprintf(out, "%s %s\tdoes not fit (%d > %d)\n", mark, c.Name, total, c.MaxBytes)
			continue
		}
		fmt.Fprintf(out, "%s %s\tfee ~%d\n", mark, c.Name, carrier.Estimate(c, total, *rate))
	}
	return 0
}

func cmdResolve(args []string, in io.Reader, out, errOut io.Writer) int {
	fs := flag.NewFlagSet("resolve", flag.ContinueOnError)
	fs.SetOutput(errOut)
	addr := fs.String("index", "", "index service address")
	ttl := fs.Duration("ttl", 0, "cache lookups for this duration (0 disables)")
	hexIn := fs.Bool("hex", false, "input is hex encoded")
	timeout := fs.Duration("timeout", 10*time.Second, "per-lookup timeout")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if *addr == "" {
		fmt.Fprintln(errOut, "--index is required")
		return 2
	}

	raw, err := readMessageBytes(fs.Args(), *hexIn, in)
	if err != nil {
		fmt.Fprintln(errOut, err)
		return 1
	}
	msg, err := wire.Decode(raw)
	if err != nil {
		fmt.Fprintln(errOut, err)
		return 1
	}
	if msg.Root() {
		fmt.Fprintln(out, "root message, nothing to resolve")
		return 0
	}

	client, err := grpcindex.Dial(*addr, grpcindex.DialOptions{Timeout: *timeout})
	if err != nil {
		fmt.Fprintln(errOut, err)
		return 1
	}
	defer client.Close()
	client.Timeout = *timeout

	var ix index.Index = client
	if *ttl > 0 {
		ix = index.NewTTLCache(client, *ttl)
	}

	results, err := resolve.Message(context.Background(), ix, msg)
	if err != nil {
		fmt.Fprintln(errOut, err)
		return 1
	}
	for i, r := range results {
		switch r.Status {
		case resolve.StatusResolved:
			fmt.Fprintf(out, "[%d] resolved %s vout %d\n", i, r.TxID, r.Anchor.Vout)
		case resolve.StatusOrphan:
			fmt.Fprintf(out, "[%d] orphan %x (parent not indexed yet)\n", i, r.Anchor.TxPrefix)
		case resolve.StatusAmbiguous:
			fmt.Fprintf(out, "[%d] ambiguous %x, %d candidates:\n", i, r.Anchor.TxPrefix, len(r.Candidates))
			for _, c := range r.Candidates {
				fmt.Fprintf(out, "      %s\n", c)
			}
		}
	}
	return 0
}

func cmdMsgCID(args []string, in io.Reader, out, errOut io.Writer) int {
	fs := flag.NewFlagSet("msg-cid", flag.ContinueOnError)
	fs.SetOutput(errOut)
	hexIn := fs.Bool("hex", false, "input is hex encoded")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	raw, err := readMessageBytes(fs.Args(), *hexIn, in)
	if err != nil {
		fmt.Fprintln(errOut, err)
		return 1
	}
	fmt.Fprintln(out, msgid.String(raw))
	return 0
}

func readMessageBytes(args []string, hexIn bool, in io.Reader) ([]byte, error) {
	path := "-"
	if len(args) > 0 {
		path = args[0]
	}
	raw, err := readInput(path, in)
	if err != nil {
		return nil, err
	}
	if hexIn {
		return hex.DecodeString(strings.TrimSpace(string(raw)))
	}
	return raw, nil
}

func readInput(path string, in io.Reader) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(in)
	}
	return os.ReadFile(path)
}
