package main

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"hubbub/internal/app"
	"hubbub/internal/auth"
	"hubbub/internal/config"
	"hubbub/internal/git"
	"hubbub/internal/github"
	"hubbub/internal/store"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "hubbub",
		Short: "GitHub issues and pull requests in the terminal",
		Long: `hubbub is a terminal client for GitHub issues and pull requests.

Run it with no arguments to open the UI. It finds local clones under the
configured scan roots, shows the issues and pull requests of the repo you
pick, and lets you review PR diffs side by side.

Authentication uses GITHUB_TOKEN/GH_TOKEN, the system keyring
(hubbub auth login), or a logged-in gh CLI, in that order. When none of
those yield a token the UI asks for one and stores it in the keyring.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd)
		},
	}
	cmd.AddCommand(authCmd(), scanCmd())
	return cmd
}

func runTUI(cmd *cobra.Command) error {
	ctx := cmd.Context()

	cfg, cfgPath, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	token, method, err := auth.Token(ctx)
	if err != nil {
		token, err = promptToken(cmd)
		if err != nil {
			return err
		}
		if kerr := auth.SaveToken(token); kerr != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "warning: token not saved to keyring: %v\n", kerr)
		}
		method = auth.MethodPrompt
	}

	registry, err := store.NewStore()
	if err != nil {
		return fmt.Errorf("open repo registry: %w", err)
	}

	// Launching from inside a clone preselects it in the picker.
	initialRepo := ""
	if root, err := git.DiscoverRepoRoot(ctx, "."); err == nil {
		initialRepo = root
	}

	model, err := app.NewModel(app.ModelDeps{
		Config:      cfg,
		ConfigPath:  cfgPath,
		Client:      github.NewClient(token),
		Scanner:     git.NewScanService(),
		Checkout:    git.NewCheckoutService(),
		Registry:    registry,
		InitialRepo: initialRepo,
		AuthLabel:   method.String(),
	})
	if err != nil {
		return err
	}

	// Stray log writes would corrupt the alternate screen, so they go to a
	// file when debugging and nowhere otherwise.
	if os.Getenv("HUBBUB_DEBUG") != "" {
		f, err := tea.LogToFile("hubbub-debug.log", "debug")
		if err != nil {
			return err
		}
		defer f.Close()
	} else {
		log.SetOutput(io.Discard)
	}

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())

	if watcher, err := config.Watch(cfgPath, func() { p.Send(app.ConfigChangedMsg{}) }); err == nil {
		defer watcher.Close()
	}

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run ui: %w", err)
	}
	return nil
}

func authCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Manage the stored GitHub token",
	}

	var tokenFlag string
	login := &cobra.Command{
		Use:   "login",
		Short: "Store a GitHub token in the system keyring",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			token := strings.TrimSpace(tokenFlag)
			if token == "" {
				var err error
				if token, err = promptToken(cmd); err != nil {
					return err
				}
			}
			if err := auth.SaveToken(token); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Token saved to keyring.")
			return nil
		},
	}
	login.Flags().StringVar(&tokenFlag, "token", "", "token value (read from stdin when omitted)")

	logout := &cobra.Command{
		Use:   "logout",
		Short: "Remove the stored token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := auth.ClearToken(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Token removed.")
			return nil
		},
	}

	status := &cobra.Command{
		Use:   "status",
		Short: "Show which token source is active",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			token, method, err := auth.Token(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Authenticated via %s (%s)\n", method, maskToken(token))
			return nil
		},
	}

	cmd.AddCommand(login, logout, status)
	return cmd
}

func promptToken(cmd *cobra.Command) (string, error) {
	fmt.Fprint(cmd.OutOrStdout(), "Paste a GitHub token: ")
	line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	token := strings.TrimSpace(line)
	if token == "" {
		if err != nil {
			return "", fmt.Errorf("read token: %w", err)
		}
		return "", fmt.Errorf("no token entered")
	}
	return token, nil
}

func maskToken(token string) string {
	if len(token) <= 8 {
		return "****"
	}
	return token[:4] + "..." + token[len(token)-4:]
}

func scanCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "scan",
		Short: "Scan the configured roots for GitHub clones",
		Long: `Scan walks the scan_roots from the config file (the home directory when
unset), records every git clone with a GitHub remote, and saves the result
so the UI starts with a warm repository list.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := config.Load()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			repos, err := git.NewScanService().Scan(cmd.Context(), cfg.ScanRoots)
			if err != nil {
				return err
			}
			registry, err := store.NewStore()
			if err != nil {
				return err
			}
			if err := registry.Save(repos); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Found %d repositories.\n", len(repos))
			for _, r := range repos {
				label := r.Path
				if len(r.Remotes) > 0 {
					label = fmt.Sprintf("%s  (%s/%s)", r.Path, r.Remotes[0].Owner, r.Remotes[0].Repo)
				}
				fmt.Fprintln(cmd.OutOrStdout(), "  "+label)
			}
			return nil
		},
	}
}
