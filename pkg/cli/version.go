package cli

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/m3org/petspec/pkg/petspec"
	"github.com/m3org/petspec/pkg/serializer"
)

// VersionInfo describes the petspec build.
type VersionInfo struct {
	Name                 string `json:"name" yaml:"name"`
	Version              string `json:"version" yaml:"version"`
	Commit               string `json:"commit" yaml:"commit"`
	Date                 string `json:"date" yaml:"date"`
	SupportedSpecVersion string `json:"supportedSpecVersion" yaml:"supportedSpecVersion"`
}

// TableHeader implements serializer.Tabler.
func (v VersionInfo) TableHeader() []string {
	return []string{"NAME", "VERSION", "COMMIT", "BUILT", "SPEC VERSION"}
}

// TableRows implements serializer.Tabler.
func (v VersionInfo) TableRows() [][]string {
	return [][]string{{v.Name, v.Version, v.Commit, v.Date, v.SupportedSpecVersion}}
}

func buildInfo() VersionInfo {
	return VersionInfo{
		Name:                 name,
		Version:              version,
		Commit:               commit,
		Date:                 date,
		SupportedSpecVersion: petspec.SupportedVersion.String(),
	}
}

func versionCmd() *cli.Command {
	return &cli.Command{
		Name:  "version",
		Usage: "Print build and supported spec version",
		Flags: []cli.Flag{
			formatFlag(),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			outFormat, err := parseOutputFormat(cmd)
			if err != nil {
				return err
			}
			if err := serializer.NewWriter(outFormat, cmd.Root().Writer).Serialize(ctx, buildInfo()); err != nil {
				return fmt.Errorf("failed to write version: %w", err)
			}
			return nil
		},
	}
}
