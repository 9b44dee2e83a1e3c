package main

import (
	"bufio"
	"bytes"
	"encoding/hex"
	"fmt"
	"io"
	"log"
	mrand "math/rand/v2"
	"os"
	"strings"

	"github.com/minio/sha256-simd"
	"github.com/schollz/progressbar/v3"
	cli "github.com/urfave/cli/v2"

	"github.com/eon-protocol/zkimg"
	"github.com/eon-protocol/zkimg/circuits/schnorr"
)

func main() {
	app := cli.NewApp()
	app.Name = "schnorrvec"
	app.Usage = "generate and check no-pubkey-check schnorr signature vectors"
	app.Commands = []*cli.Command{
		genCmd,
		verifyCmd,
		constraintsCmd,
	}
	if err := app.Run(os.Args); err != nil {
		log.Fatalln(err)
	}
}

var genCmd = &cli.Command{
	Name:  "gen",
	Usage: "sample valid vectors, one hex line each",
	Flags: []cli.Flag{
		&cli.IntFlag{
			Name:  "count",
			Value: 16,
		},
		&cli.StringFlag{
			Name:  "seed",
			Usage: "derive all randomness from this string; empty uses the system source",
		},
		&cli.IntFlag{
			Name:  "max-draws",
			Value: zkimg.DEFAULT_MAX_DRAWS,
			Usage: "cap on resampling draws, 0 for none",
		},
		&cli.StringFlag{
			Name:  "message",
			Usage: "sign this message with a BIP-340 challenge instead of a random msg hash",
		},
	},
	Action: func(cctx *cli.Context) error {
		opts := []zkimg.SamplerOption{zkimg.WithMaxDraws(cctx.Int("max-draws"))}
		if seed := cctx.String("seed"); seed != "" {
			opts = append(opts, zkimg.WithRandomness(mrand.NewChaCha8(sha256.Sum256([]byte(seed)))))
		}
		sampler := zkimg.NewSampler(opts...)

		count := cctx.Int("count")
		bar := progressbar.NewOptions(count,
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionSetDescription("sampling"),
		)
		out := bufio.NewWriter(os.Stdout)
		defer out.Flush()
		for i := 0; i < count; i++ {
			in, err := sample(sampler, cctx.String("message"))
			if err != nil {
				return fmt.Errorf("vector %d: %w", i, err)
			}
			var buf bytes.Buffer
			if _, err := in.WriteTo(&buf); err != nil {
				return err
			}
			fmt.Fprintln(out, hex.EncodeToString(buf.Bytes()))
			bar.Add(1)
		}
		return nil
	},
}

func sample(sampler *zkimg.Sampler, message string) (*zkimg.SignatureInput, error) {
	if message == "" {
		return sampler.Sample()
	}
	sk, err := sampler.Scalar()
	if err != nil {
		return nil, err
	}
	return sampler.SignMessage(sk, []byte(message))
}

var verifyCmd = &cli.Command{
	Name:      "verify",
	Usage:     "verify hex vectors read from a file or stdin",
	ArgsUsage: "[file]",
	Flags: []cli.Flag{
		&cli.IntFlag{
			Name:  "jobs",
			Usage: "concurrent verifications, 0 for one per CPU",
		},
	},
	Action: func(cctx *cli.Context) error {
		var r io.Reader = os.Stdin
		if path := cctx.Args().First(); path != "" {
			f, err := os.Open(path)
			if err != nil {
				return err
			}
			defer f.Close()
			r = f
		}
		inputs, err := readVectors(r)
		if err != nil {
			return err
		}
		results, err := zkimg.VerifyBatch(cctx.Context, inputs, cctx.Int("jobs"))
		if err != nil {
			return err
		}
		nvalid := 0
		for i, ok := range results {
			if ok {
				nvalid++
			}
			fmt.Println(i, ok)
		}
		log.Println("valid:", nvalid, "of", len(results))
		if nvalid != len(results) {
			return cli.Exit(fmt.Sprintf("%d invalid vectors", len(results)-nvalid), 1)
		}
		return nil
	},
}

// readVectors decodes one hex vector per non-empty line. Lines that do not
// decode become nil entries, which verify as false.
func readVectors(r io.Reader) ([]*zkimg.SignatureInput, error) {
	var inputs []*zkimg.SignatureInput
	scanner := bufio.NewScanner(r)
	for line := 1; scanner.Scan(); line++ {
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		raw, err := hex.DecodeString(text)
		if err != nil {
			log.Println("line", line, "skipped:", err)
			inputs = append(inputs, nil)
			continue
		}
		in := new(zkimg.SignatureInput)
		if _, err := in.ReadFrom(bytes.NewReader(raw)); err != nil {
			log.Println("line", line, "skipped:", err)
			in = nil
		}
		inputs = append(inputs, in)
	}
	return inputs, scanner.Err()
}

var constraintsCmd = &cli.Command{
	Name:  "constraints",
	Usage: "compile the verifier circuit and print its size",
	Action: func(cctx *cli.Context) error {
		ccs, err := schnorr.Compile()
		if err != nil {
			return err
		}
		fmt.Println("constraints:", ccs.GetNbConstraints())
		fmt.Println("public:", ccs.GetNbPublicVariables())
		fmt.Println("secret:", ccs.GetNbSecretVariables())
		return nil
	},
}
