// Command sshedit is an interactive terminal editor for the hosts in an
// OpenSSH-style client config file: browse profiles, edit fields in place,
// add new hosts, tighten identity-file permissions, and launch ssh.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"sshedit/pkg/launcher"
	"sshedit/pkg/permfix"
	"sshedit/pkg/profile"
	"sshedit/pkg/session"
	"sshedit/pkg/settings"
	"sshedit/pkg/tui"
)

var (
	flagSettings string
	flagConfig   string
	flagList     bool
	flagHost     string
	flagFixPerms string
	flagDryRun   bool
)

func init() {
	flag.StringVar(&flagSettings, "settings", "", "Path to sshedit settings YAML (defaults to XDG paths if empty)")
	flag.StringVar(&flagConfig, "config", "", "Path to the ssh config file to edit (default: settings, then ~/.ssh/config)")
	flag.BoolVar(&flagList, "list", false, "List hosts and exit")
	flag.StringVar(&flagHost, "host", "", "Connect directly to a host by name, skipping the TUI")
	flag.StringVar(&flagFixPerms, "fix-perms", "", "Tighten permissions on a credential file and exit")
	flag.BoolVar(&flagDryRun, "dry-run", false, "Print the ssh command instead of running it")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "sshedit\n\n")
		fmt.Fprintf(os.Stderr, "Usage:\n")
		fmt.Fprintf(os.Stderr, "  sshedit [options]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  sshedit
  sshedit --config ./testdata/config --list
  sshedit --host prod-db-1
  sshedit --fix-perms ~/.ssh/id_ed25519
`)
	}
}

func main() {
	flag.Parse()

	cfg, _, err := settings.Load(flagSettings)
	if err != nil && !errors.Is(err, settings.ErrNotFound) {
		fmt.Fprintf(os.Stderr, "sshedit: %v\n", err)
		os.Exit(2)
	}

	configPath := flagConfig
	if configPath == "" {
		configPath = cfg.ConfigPath()
	}

	if flagFixPerms != "" {
		os.Exit(runFixPerms(flagFixPerms))
	}

	store := profile.Load(configPath)

	if flagList {
		for _, p := range store.Profiles() {
			line := p.Name
			if hn, ok := p.Get(profile.FieldHostName); ok && hn != "" {
				line += "\t" + hn
			}
			fmt.Println(line)
		}
		return
	}

	host := flagHost
	if host == "" {
		sess := session.New(store, permfix.Default(), cfg.Debounce())
		host, err = tui.Run(sess, configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "sshedit: %v\n", err)
			os.Exit(1)
		}
		if host == "" {
			// Clean quit.
			return
		}
	}

	if flagDryRun {
		fmt.Printf("%s %s\n", cfg.Binary(), host)
		return
	}

	exit, err := launcher.Launch(cfg.Binary(), host)
	if err != nil {
		fmt.Fprintf(os.Stderr, "sshedit: %v\n", err)
		os.Exit(1)
	}
	os.Exit(exit)
}

func runFixPerms(path string) int {
	rep, err := permfix.Default().Tighten(path)
	if out := rep.Output(); out != "" {
		fmt.Fprint(os.Stderr, out)
	}
	fmt.Println(rep.Summary())
	if err != nil {
		return 1
	}
	return 0
}
