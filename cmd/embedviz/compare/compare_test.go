package comparecmder_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	comparecmder "github.com/embedviz/embedviz/cmd/embedviz/compare"
)

func TestCompare(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Compare Command Suite")
}

// pngMagic is the 8-byte PNG file signature.
var pngMagic = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}

// fakeOllama serves the two endpoints the compare command touches: the
// tags listing used for connectivity checks and the embed endpoint. The
// returned vector is keyed on the input text.
func fakeOllama() *httptest.Server {
	vectors := map[string][]float64{
		"alpha": {1, 2, 3},
		"beta":  {4, 5, 6},
		"null":  {0, 0, 0},
		"short": {1, 2},
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/tags", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"models":[{"name":"nomic-embed-text:latest"}]}`)
	})
	mux.HandleFunc("/api/embed", func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Model string `json:"model"`
			Input string `json:"input"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		vec, ok := vectors[req.Input]
		if !ok {
			vec = []float64{1, 1, 1}
		}

		_ = json.NewEncoder(w).Encode(map[string][][]float64{
			"embeddings": {vec},
		})
	})

	return httptest.NewServer(mux)
}

var _ = Describe("Compare Command", func() {
	var (
		tmpDir  string
		cfgDir  string
		server  *httptest.Server
		outPath string
	)

	BeforeEach(func() {
		var err error
		tmpDir, err = os.MkdirTemp("", "compare-test-*")
		Expect(err).NotTo(HaveOccurred())

		cfgDir = filepath.Join(tmpDir, "cfg")
		outPath = filepath.Join(tmpDir, "comparison.png")
		server = fakeOllama()
	})

	AfterEach(func() {
		server.Close()
		os.RemoveAll(tmpDir)
	})

	execute := func(args ...string) error {
		cmd := comparecmder.NewCompareCmd()
		cmd.PersistentFlags().BoolP("debug", "d", false, "Enable debug logging")
		cmd.PersistentFlags().String("config-dir", "", "Override path to .embedviz/ config directory")
		cmd.SetArgs(append(args, "--config-dir", cfgDir))
		return cmd.Execute()
	}

	Describe("NewCompareCmd", func() {
		It("creates a command with expected properties", func() {
			cmd := comparecmder.NewCompareCmd()
			Expect(cmd.Use).To(Equal("compare <text1> <text2>"))
			Expect(cmd.Short).NotTo(BeEmpty())
		})

		It("registers the model flag from the registry", func() {
			cmd := comparecmder.NewCompareCmd()
			flag := cmd.Flags().Lookup("model")
			Expect(flag).NotTo(BeNil())
			Expect(flag.Shorthand).To(Equal("m"))
			Expect(flag.DefValue).To(Equal("nomic-embed-text"))
		})

		It("registers the output flag from the registry", func() {
			cmd := comparecmder.NewCompareCmd()
			flag := cmd.Flags().Lookup("output")
			Expect(flag).NotTo(BeNil())
			Expect(flag.DefValue).To(Equal("comparison.png"))
		})

		It("requires exactly two arguments", func() {
			err := execute("only-one")
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("running a comparison", func() {
		It("writes a PNG figure for a pair of texts", func() {
			err := execute("alpha", "beta", "--target", server.URL, "--output", outPath)
			Expect(err).NotTo(HaveOccurred())

			data, err := os.ReadFile(outPath)
			Expect(err).NotTo(HaveOccurred())
			Expect(len(data)).To(BeNumerically(">", 8))
			Expect(data[:8]).To(Equal(pngMagic))
		})

		It("writes an SVG figure when the output path ends in .svg", func() {
			svgPath := filepath.Join(tmpDir, "comparison.svg")
			err := execute("alpha", "beta", "--target", server.URL, "--output", svgPath)
			Expect(err).NotTo(HaveOccurred())

			data, err := os.ReadFile(svgPath)
			Expect(err).NotTo(HaveOccurred())
			Expect(string(data)).To(ContainSubstring("<svg"))
		})

		It("skips the figure with --no-plot", func() {
			err := execute("alpha", "beta", "--target", server.URL, "--output", outPath, "--no-plot")
			Expect(err).NotTo(HaveOccurred())

			_, err = os.Stat(outPath)
			Expect(os.IsNotExist(err)).To(BeTrue())
		})

		It("emits JSON with --json", func() {
			err := execute("alpha", "beta", "--target", server.URL, "--output", outPath, "--json")
			Expect(err).NotTo(HaveOccurred())
		})

		It("rejects an unsupported output format", func() {
			err := execute("alpha", "beta", "--target", server.URL, "--output", filepath.Join(tmpDir, "comparison.pdf"))
			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring("unsupported figure format"))
		})

		It("applies plot output from the config file", func() {
			Expect(os.MkdirAll(cfgDir, 0o755)).To(Succeed())
			cfgOut := filepath.Join(tmpDir, "from-config.png")
			toml := fmt.Sprintf("[plot]\noutput = %q\n", cfgOut)
			Expect(os.WriteFile(filepath.Join(cfgDir, "config.toml"), []byte(toml), 0o644)).To(Succeed())

			err := execute("alpha", "beta", "--target", server.URL)
			Expect(err).NotTo(HaveOccurred())

			_, err = os.Stat(cfgOut)
			Expect(err).NotTo(HaveOccurred())
		})
	})

	Describe("failure modes", func() {
		It("fails when the provider is unreachable", func() {
			dead := httptest.NewServer(http.NotFoundHandler())
			dead.Close()

			err := execute("alpha", "beta", "--target", dead.URL, "--output", outPath)
			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring("unreachable"))
		})

		It("fails for an unknown provider", func() {
			err := execute("alpha", "beta", "--provider", "carrier", "--output", outPath)
			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring("unsupported embedding provider"))
		})

		It("fails when one embedding is the zero vector", func() {
			err := execute("alpha", "null", "--target", server.URL, "--output", outPath)
			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring("zero-norm"))
		})

		It("fails on mismatched dimensions", func() {
			err := execute("alpha", "short", "--target", server.URL, "--output", outPath)
			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring("dimension mismatch"))
		})

		It("does not leave a figure behind on failure", func() {
			err := execute("alpha", "null", "--target", server.URL, "--output", outPath)
			Expect(err).To(HaveOccurred())

			_, err = os.Stat(outPath)
			Expect(os.IsNotExist(err)).To(BeTrue())
		})
	})
})
