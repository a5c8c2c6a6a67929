package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rawbytedev/zcbuf/pkg/compactwire"
)

// frameCmd represents the frame command
var frameCmd = &cobra.Command{
	Use:   "frame <file>",
	Short: "List and verify compactwire frames",
	Long: `Read consecutive compactwire frames from a file, verify each one and print
a summary line per frame. Stops at the first frame that fails to verify.

Example:
  zcbuf frame capture.bin`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := os.Open(args[0])
		if err != nil {
			return errors.Wrap(err, "failed to open input")
		}
		defer f.Close()

		r := bufio.NewReader(f)
		out := cmd.OutOrStdout()
		var off int64
		for i := 0; ; i++ {
			frame, err := compactwire.ReadFrame(r)
			if errors.Is(err, io.EOF) {
				logrus.WithField("frames", i).Debug("end of input")
				return nil
			}
			if err != nil {
				return errors.Wrapf(err, "frame %d at offset %d", i, off)
			}
			line, err := describeFrame(frame)
			if err != nil {
				return errors.Wrapf(err, "frame %d at offset %d", i, off)
			}
			fmt.Fprintf(out, "%08x %6d %s\n", off, len(frame), line)
			off += int64(len(frame))
		}
	},
}

func describeFrame(frame []byte) (string, error) {
	t, err := compactwire.PeekFrameType(frame)
	if err != nil {
		return "", err
	}
	switch t {
	case compactwire.TypeData:
		d, err := compactwire.DecodeDataFrame(frame)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("data flags=%02x offsets=%v payload=%d", d.Flags, d.Offsets, len(d.Payload)), nil
	case compactwire.TypeError:
		e, err := compactwire.DecodeErrorFrame(frame)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("error code=%d data=%q", e.Code, e.Data), nil
	case compactwire.TypeHandshake:
		h, err := compactwire.DecodeHandshake(frame)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("handshake versions=%032b mtu=%d timeout=%dms algs=%v", h.VersionMask, h.MTU, h.TimeoutMS, h.AlgCodes), nil
	}
	return "", errors.Wrapf(compactwire.ErrNotFrame, "unknown type 0x%02x", t)
}

func init() {
	rootCmd.AddCommand(frameCmd)
}
