package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vitalvas/jwsjcs/jwk"
	"github.com/vitalvas/jwsjcs/jws"
)

func newSignCmd(opts *options) *cobra.Command {
	var (
		keyPath string
		format  string
		compact bool
		noEmbed bool
	)

	cmd := &cobra.Command{
		Use:   "sign [file]",
		Short: "Sign a JSON object",
		Long: `Sign a JSON (or YAML) object and print it with the signature property added.

The header carries the algorithm and, unless --no-embed is set, the public
key as a JWK so that receivers can verify without prior key exchange.

Examples:
  jwsjcs sign --key signer.jwk document.json
  cat document.yaml | jwsjcs sign --key signer.jwk --format yaml`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := opts.loadKey(keyPath)
			if err != nil {
				return err
			}

			if key == nil {
				return errors.New("no signing key: use --key or set key in the config file")
			}

			signer, err := key.Signer()
			if err != nil {
				return err
			}

			embedded := key
			if noEmbed {
				embedded = nil
			}

			header, err := jwk.Header(signer, embedded)
			if err != nil {
				return err
			}

			data, name, err := readInput(cmd, args)
			if err != nil {
				return err
			}

			doc, err := parseDocument(data, name, format)
			if err != nil {
				return err
			}

			signed, err := jws.Sign(cmd.Context(), doc, jws.SignConfig{
				Header:            header,
				Signer:            signer,
				SignatureProperty: opts.signatureProperty,
				MaxDepth:          opts.maxDepth,
			})
			if err != nil {
				return err
			}

			opts.logger.Info("document signed",
				"alg", signer.Algorithm(),
				"kid", signer.KeyID(),
				"payload_bytes", len(signed.Envelope.Payload()),
			)

			if compact {
				_, err := fmt.Fprintln(cmd.OutOrStdout(), signed.Envelope.Compact())
				return err
			}

			out, err := signed.Value.MarshalJSON()
			if err != nil {
				return err
			}

			return writeLine(cmd, out)
		},
	}

	cmd.Flags().StringVarP(&keyPath, "key", "k", "", "Private JWK file")
	cmd.Flags().StringVarP(&format, "format", "f", formatAuto, "Input format: auto, json, yaml")
	cmd.Flags().BoolVar(&compact, "compact", false, "Print only the compact envelope")
	cmd.Flags().BoolVar(&noEmbed, "no-embed", false, "Do not embed the public key in the header")

	return cmd
}
