package cli

import (
	"bufio"
	"fmt"

	"github.com/spf13/cobra"

	"accessible-palette/internal/auth"
)

func newHashKeyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hash-key",
		Short: "Hash an API key for api_key_hashes",
		Long: `Read an API key from stdin and print its bcrypt hash. Add the hash to
api_key_hashes in config.json or to API_KEY_HASHES (comma separated).

Example:
  echo -n "s3cret" | palette hash-key`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			scanner := bufio.NewScanner(cmd.InOrStdin())
			var key string
			if scanner.Scan() {
				key = scanner.Text()
			}
			if err := scanner.Err(); err != nil {
				return fmt.Errorf("failed to read key: %w", err)
			}

			hash, err := auth.HashKey(key)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), hash)
			return nil
		},
	}
}
