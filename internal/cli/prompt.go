package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// readLine reads one line without its terminator. The last line of the
// input is returned together with io.EOF.
func readLine(reader *bufio.Reader) (string, error) {
	line, err := reader.ReadString('\n')
	if err != nil && err != io.EOF {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), err
}

// promptYesNo asks until the answer is yes, no, or empty (the default).
func promptYesNo(reader *bufio.Reader, out io.Writer, label string, defaultYes bool) (bool, error) {
	suffix := "y/N"
	if defaultYes {
		suffix = "Y/n"
	}
	for {
		fmt.Fprintf(out, "%s [%s]: ", label, suffix)
		line, err := readLine(reader)
		if err != nil && err != io.EOF {
			return false, err
		}
		switch strings.ToLower(strings.TrimSpace(line)) {
		case "":
			return defaultYes, nil
		case "y", "yes", "j", "ja":
			return true, nil
		case "n", "no", "nein":
			return false, nil
		}
		if err == io.EOF {
			return false, fmt.Errorf("invalid response %q", line)
		}
		fmt.Fprintln(out, "Please answer yes or no.")
	}
}
