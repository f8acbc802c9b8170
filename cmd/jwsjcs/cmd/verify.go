package cmd

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/vitalvas/jwsjcs/codec"
	"github.com/vitalvas/jwsjcs/jwk"
	"github.com/vitalvas/jwsjcs/jws"
)

// ErrInvalidSignature is returned by verify when the signature does not
// match, so the process exits non-zero.
var ErrInvalidSignature = errors.New("signature is invalid")

var (
	validFmt   = color.New(color.FgGreen, color.Bold).SprintFunc()
	invalidFmt = color.New(color.FgRed, color.Bold).SprintFunc()
)

func newVerifyCmd(opts *options) *cobra.Command {
	var (
		keyPath    string
		format     string
		encoded    bool
		algorithms []string
	)

	cmd := &cobra.Command{
		Use:   "verify [file]",
		Short: "Verify a signed JSON object",
		Long: `Verify a signed JSON (or YAML) object and print VALID or INVALID.

Without --key the public key embedded in the signature header is used.
With --encoded the input is base64url-encoded JSON.

Examples:
  jwsjcs verify signed.json
  jwsjcs verify --key signer.pub.jwk --alg RS256,PS256 signed.json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, name, err := readInput(cmd, args)
			if err != nil {
				return err
			}

			if encoded {
				data, err = codec.DecodeBase64URL(string(bytes.TrimSpace(data)))
				if err != nil {
					return err
				}

				format = formatJSON
			}

			doc, err := parseDocument(data, name, format)
			if err != nil {
				return err
			}

			key, err := opts.loadKey(keyPath)
			if err != nil {
				return err
			}

			resolver := jwk.EmbeddedKeyResolver
			if key != nil {
				resolver = jwk.FixedKeyResolver(key)
			}

			if !cmd.Flags().Changed("alg") && len(opts.config.Algorithms) > 0 {
				algorithms = opts.config.Algorithms
			}

			res, err := jws.Verify(cmd.Context(), doc, jws.VerifyConfig{
				Verifier:          jwk.NewVerifier(resolver),
				SignatureProperty: opts.signatureProperty,
				MaxDepth:          opts.maxDepth,
				Algorithms:        algorithms,
			})
			if err != nil {
				return err
			}

			opts.logger.Info("signature checked",
				"alg", res.Envelope.Algorithm(),
				"result", res.Result,
				"payload_bytes", len(res.Envelope.Payload()),
			)

			if !res.Valid() {
				fmt.Fprintln(cmd.OutOrStdout(), invalidFmt("INVALID"))
				return ErrInvalidSignature
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), validFmt("VALID"))

			return err
		},
	}

	cmd.Flags().StringVarP(&keyPath, "key", "k", "", "Public JWK file (default: key embedded in the header)")
	cmd.Flags().StringVarP(&format, "format", "f", formatAuto, "Input format: auto, json, yaml")
	cmd.Flags().BoolVar(&encoded, "encoded", false, "Input is base64url-encoded JSON")
	cmd.Flags().StringSliceVar(&algorithms, "alg", nil, "Accepted algorithms (comma separated)")

	return cmd
}
