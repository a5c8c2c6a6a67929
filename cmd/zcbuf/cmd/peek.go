package cmd

import (
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/rawbytedev/zcbuf/pkg/peek"
)

// peekCmd represents the peek command
var peekCmd = &cobra.Command{
	Use:   "peek <file> [type...]",
	Short: "Decode fields from a binary file",
	Long: `Decode a sequence of fields from a binary file and print the offset and
value of each one. Fields come either from type tokens on the command line or
from a YAML layout.

Type tokens: u8 i8 u16 i16 u32 i32 u64 i64 u128 i128 f32 f64 with an optional
le/be/ne suffix, uvarint, cstr, str:N, bytes:N and skip:N.

Example:
  zcbuf peek header.bin u32be u16 cstr
  zcbuf peek header.bin --layout header.yaml --offset 16`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		layoutPath, _ := cmd.Flags().GetString("layout")
		endian, _ := cmd.Flags().GetString("endian")
		offset, _ := cmd.Flags().GetInt("offset")

		var layout *peek.Layout
		switch {
		case layoutPath != "" && len(args) > 1:
			return errors.New("give either --layout or type tokens, not both")
		case layoutPath != "":
			l, err := peek.LoadLayout(layoutPath)
			if err != nil {
				return err
			}
			layout = l
		case len(args) > 1:
			layout = peek.LayoutFromTokens(endian, args[1:])
		default:
			return errors.New("nothing to decode: give type tokens or --layout")
		}

		data, err := os.ReadFile(args[0])
		if err != nil {
			return errors.Wrap(err, "failed to read input")
		}
		vals, err := peek.Peek(data, layout, offset)
		out := cmd.OutOrStdout()
		for _, v := range vals {
			fmt.Fprintln(out, v)
		}
		return err
	},
}

func init() {
	peekCmd.Flags().StringP("layout", "l", "", "YAML layout file")
	peekCmd.Flags().StringP("endian", "e", "le", "Default byte order for type tokens (le, be, ne)")
	peekCmd.Flags().IntP("offset", "o", 0, "Byte offset to start decoding at")
	rootCmd.AddCommand(peekCmd)
}
