package cmd

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/vitalvas/jwsjcs/jwa"
	"github.com/vitalvas/jwsjcs/jwk"
)

func newKeygenCmd(opts *options) *cobra.Command {
	var (
		alg     string
		curve   string
		keyID   string
		rsaBits int
		outPath string
	)

	cmd := &cobra.Command{
		Use:   "keygen",
		Short: "Generate a signing key as a JWK",
		Long: `Generate a private JWK for the given algorithm.

The private key is written to --out with mode 0600 and the public key is
printed to stdout. Without --out the private key is printed instead.

Examples:
  jwsjcs keygen --alg RS256 --out signer.jwk
  jwsjcs keygen --alg EdDSA --curve Ed448 --kid device-1 --out ed448.jwk`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if keyID == "" {
				keyID = uuid.NewString()
			}

			key, err := jwk.Generate(jwk.GenerateConfig{
				Algorithm: jwa.Algorithm(alg),
				KeyID:     keyID,
				Curve:     curve,
				RSABits:   rsaBits,
			})
			if err != nil {
				return err
			}

			priv, err := key.MarshalJSON()
			if err != nil {
				return err
			}

			if outPath == "" {
				return writeLine(cmd, priv)
			}

			if err := os.WriteFile(outPath, append(priv, '\n'), 0600); err != nil {
				return fmt.Errorf("failed to write key: %w", err)
			}

			opts.logger.Info("private key written", "path", outPath, "kid", keyID, "alg", alg)

			// Symmetric keys have no public half to print.
			if _, ok := key.Key.([]byte); ok {
				return nil
			}

			pub, err := key.Public()
			if err != nil {
				return err
			}

			data, err := pub.MarshalJSON()
			if err != nil {
				return err
			}

			return writeLine(cmd, data)
		},
	}

	cmd.Flags().StringVar(&alg, "alg", string(jwa.ES256), "Signature algorithm")
	cmd.Flags().StringVar(&curve, "curve", "", "EdDSA curve: Ed25519 or Ed448")
	cmd.Flags().StringVar(&keyID, "kid", "", "Key id (default: random UUID)")
	cmd.Flags().IntVar(&rsaBits, "rsa-bits", jwk.DefaultRSABits, "RSA modulus size")
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "Private key output file")

	return cmd
}
