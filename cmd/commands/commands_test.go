package commands

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/smartystreets/goconvey/convey"

	"github.com/okian/xgflow/internal/adapters/matchfile"
)

const sampleMatch = "../../internal/adapters/matchfile/testdata/brugge_anderlecht.json"

func runRoot(args ...string) (string, string, error) {
	var stdout, stderr bytes.Buffer
	root := NewRootCmd()
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func TestAssembleCommand(t *testing.T) {
	convey.Convey("Given the assemble command", t, func() {
		t.Setenv("XGFLOW_CONFIG", "")
		t.Setenv("XGFLOW_ENV_FILE", filepath.Join(t.TempDir(), "missing.env"))

		convey.Convey("When assembling a valid match file", func() {
			stdout, _, err := runRoot("assemble", "--workers", "2", sampleMatch)

			convey.Convey("Then the document is printed as JSON", func() {
				convey.So(err, convey.ShouldBeNil)

				var docs []matchfile.Document
				convey.So(sonic.UnmarshalString(stdout, &docs), convey.ShouldBeNil)
				convey.So(docs, convey.ShouldHaveLength, 1)
				convey.So(docs[0].Home.Team, convey.ShouldEqual, "Club Brugge")
				convey.So(docs[0].Events, convey.ShouldHaveLength, 4)
			})
		})

		convey.Convey("When one of the files is missing", func() {
			stdout, stderr, err := runRoot("assemble", sampleMatch, filepath.Join(t.TempDir(), "nope.json"), sampleMatch)

			convey.Convey("Then the good files are still printed in order", func() {
				convey.So(errors.Is(err, ErrAssemble), convey.ShouldBeTrue)
				convey.So(errors.Is(err, matchfile.ErrDecode), convey.ShouldBeTrue)

				var docs []matchfile.Document
				convey.So(sonic.UnmarshalString(stdout, &docs), convey.ShouldBeNil)
				convey.So(docs, convey.ShouldHaveLength, 2)
				convey.So(stderr, convey.ShouldContainSubstring, "decode match file")
			})
		})

		convey.Convey("When a file names the same team twice", func() {
			path := filepath.Join(t.TempDir(), "bad.json")
			convey.So(os.WriteFile(path, []byte(`{"home":"Gent","away":"Gent"}`), 0o600), convey.ShouldBeNil)

			stdout, _, err := runRoot("assemble", path)

			convey.Convey("Then nothing is printed and the command fails", func() {
				convey.So(errors.Is(err, ErrAssemble), convey.ShouldBeTrue)
				convey.So(stdout, convey.ShouldBeEmpty)
			})
		})

		convey.Convey("When no files are given", func() {
			_, _, err := runRoot("assemble")

			convey.Convey("Then argument validation fails", func() {
				convey.So(err, convey.ShouldNotBeNil)
			})
		})
	})
}

func TestRootOptions(t *testing.T) {
	convey.Convey("Given a YAML config file", t, func() {
		dir := t.TempDir()
		t.Setenv("XGFLOW_ENV_FILE", filepath.Join(dir, "missing.env"))
		path := filepath.Join(dir, "xgflow.yaml")
		yaml := "log_level: warn\nteam_colors:\n  Beerschot: \"#6a0dad\"\nfallback_color: \"#111111\"\n"
		convey.So(os.WriteFile(path, []byte(yaml), 0o600), convey.ShouldBeNil)

		opts := &rootOptions{configPath: path, logLevel: "debug"}

		convey.Convey("When setting up", func() {
			var logs bytes.Buffer
			err := opts.setup(context.Background(), &logs)

			convey.Convey("Then the file feeds the service palette", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(opts.cfg.LogLevel, convey.ShouldEqual, "warn")

				svc, closeStore, err := opts.newService(context.Background())
				convey.So(err, convey.ShouldBeNil)
				defer closeStore()
				palette := svc.Palette()
				convey.So(palette.ColorOr("Beerschot"), convey.ShouldEqual, "#6a0dad")
				convey.So(palette.ColorOr("Nowhere FC"), convey.ShouldEqual, "#111111")
			})
		})

		convey.Convey("When the file does not exist", func() {
			opts.configPath = filepath.Join(dir, "absent.yaml")
			err := opts.setup(context.Background(), &bytes.Buffer{})

			convey.Convey("Then setup fails", func() {
				convey.So(err, convey.ShouldNotBeNil)
			})
		})
	})
}

func TestSystemMetrics(t *testing.T) {
	convey.Convey("Updating system metrics does not panic", t, func() {
		convey.So(updateSystemMetrics, convey.ShouldNotPanic)
	})

	convey.Convey("The updater stops with its context", t, func() {
		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan struct{})
		go func() {
			startSystemMetricsUpdater(ctx)
			close(done)
		}()
		cancel()
		<-done
		convey.So(ctx.Err(), convey.ShouldNotBeNil)
	})
}
