package config_test

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/Urethramancer/kue2/config"
)

var _ = Describe("Config", func() {
	It("has hex output and info logging by default", func() {
		cfg := config.Default()
		Expect(cfg.Format).To(Equal(config.FormatHex))
		lvl, err := cfg.Level()
		Expect(err).NotTo(HaveOccurred())
		Expect(lvl).To(Equal(slog.LevelInfo))
	})

	It("overlays file values on the defaults", func() {
		cfg, err := config.Parse(strings.NewReader(`
output: prog.txt
listing: true
strict_labels: true
log_level: debug
`))
		Expect(err).NotTo(HaveOccurred())
		Expect(cfg.Output).To(Equal("prog.txt"))
		Expect(cfg.Format).To(Equal(config.FormatHex))
		Expect(cfg.Listing).To(BeTrue())
		Expect(cfg.Symbols).To(BeFalse())
		Expect(cfg.StrictLabels).To(BeTrue())
		lvl, _ := cfg.Level()
		Expect(lvl).To(Equal(slog.LevelDebug))
	})

	It("treats an empty file as defaults", func() {
		cfg, err := config.Parse(strings.NewReader("\n"))
		Expect(err).NotTo(HaveOccurred())
		Expect(cfg).To(Equal(config.Default()))
	})

	DescribeTable("rejects bad files",
		func(src string) {
			_, err := config.Parse(strings.NewReader(src))
			Expect(err).To(HaveOccurred())
		},
		Entry("unknown key", "outptu: x\n"),
		Entry("unknown format", "format: srec\n"),
		Entry("unknown level", "log_level: loud\n"),
		Entry("wrong type", "listing: [1, 2]\n"),
	)

	Describe("Load", func() {
		var dir string

		BeforeEach(func() {
			dir = GinkgoT().TempDir()
		})

		It("reads a named file", func() {
			path := filepath.Join(dir, "custom.yaml")
			Expect(os.WriteFile(path, []byte("format: binary\n"), 0o644)).To(Succeed())
			cfg, err := config.Load(path)
			Expect(err).NotTo(HaveOccurred())
			Expect(cfg.Format).To(Equal(config.FormatBinary))
		})

		It("fails on a missing named file", func() {
			_, err := config.Load(filepath.Join(dir, "absent.yaml"))
			Expect(err).To(MatchError(os.ErrNotExist))
		})

		It("falls back to defaults without the default file", func() {
			wd, err := os.Getwd()
			Expect(err).NotTo(HaveOccurred())
			Expect(os.Chdir(dir)).To(Succeed())
			DeferCleanup(os.Chdir, wd)

			cfg, err := config.Load("")
			Expect(err).NotTo(HaveOccurred())
			Expect(cfg).To(Equal(config.Default()))
		})
	})
})
