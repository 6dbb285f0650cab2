package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/dersalik/fibscope/internal/config"
	"github.com/dersalik/fibscope/internal/gitops"
	"github.com/dersalik/fibscope/internal/logger"
)

func newInitCommand() *cobra.Command {
	var (
		force  bool
		useGit bool
	)

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Initialize a fibscope workspace",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}

			absDir, err := filepath.Abs(dir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			log := logger.FromContext(cmd.Context())
			log.Debug().Str("dir", absDir).Msg("initializing workspace")
			if err := runInit(cmd.OutOrStdout(), absDir, force); err != nil {
				return err
			}
			if !useGit {
				return nil
			}
			return commitWorkspace(cmd.Context(), cmd.OutOrStdout(), absDir)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing config")
	cmd.Flags().BoolVar(&useGit, "git", false, "initialize a git repository and commit the workspace files")

	return cmd
}

func runInit(out io.Writer, dir string, force bool) error {
	cfg := config.Default()

	// Create directory structure.
	dirs := []string{
		cfg.Import.Dir,
		filepath.Join(cfg.Import.Dir, "processed"),
	}
	for _, d := range dirs {
		if err := os.MkdirAll(filepath.Join(dir, d), 0o755); err != nil {
			return fmt.Errorf("creating directory %s: %w", d, err)
		}
	}

	// Write fibscope.yaml.
	cfgPath := filepath.Join(dir, config.FileName)
	if _, err := os.Stat(cfgPath); err == nil && !force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", cfgPath)
	} else if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("checking config: %w", err)
	}
	if err := config.Save(cfgPath, cfg); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	// Write import/.gitkeep.
	if err := os.WriteFile(filepath.Join(dir, cfg.Import.Dir, ".gitkeep"), []byte{}, 0o644); err != nil {
		return fmt.Errorf("writing .gitkeep: %w", err)
	}

	// Write .gitignore; exports hold personal banking data.
	gitignore := cfg.Import.Dir + "/*.csv\n" + cfg.Import.Dir + "/processed/\n.env\n"
	if err := os.WriteFile(filepath.Join(dir, ".gitignore"), []byte(gitignore), 0o644); err != nil {
		return fmt.Errorf("writing .gitignore: %w", err)
	}

	fmt.Fprintf(out, "Initialized fibscope workspace at %s\n", dir)
	return nil
}

// commitWorkspace versions the files init wrote. Exports stay out of the
// repository through .gitignore.
func commitWorkspace(ctx context.Context, out io.Writer, dir string) error {
	log := logger.FromContext(ctx)

	repo, err := gitops.Init(ctx, dir)
	if err != nil {
		return err
	}
	hash, err := repo.Commit(ctx, "fibscope: initialize workspace",
		config.FileName,
		".gitignore",
		filepath.Join(config.Default().Import.Dir, ".gitkeep"),
	)
	if errors.Is(err, gitops.ErrNothingToCommit) {
		fmt.Fprintln(out, "Workspace files already committed")
		return nil
	}
	if err != nil {
		return err
	}
	log.Debug().Str("commit", hash).Msg("workspace committed")

	fmt.Fprintf(out, "Committed workspace files (%s)\n", hash)
	return nil
}
