package embeddingutils_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	embeddingutils "github.com/embedviz/embedviz/pkg/embeddings/utils"
)

func TestEmbeddingUtils(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Embedding Utils Suite")
}

var _ = Describe("NewEmbedder", func() {
	It("builds an ollama embedder", func() {
		e, err := embeddingutils.NewEmbedder(&embeddingutils.NewEmbedderOpts{
			ProviderType: "ollama",
			TargetURL:    "http://localhost:11434",
			Model:        "nomic-embed-text",
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(e).NotTo(BeNil())
		Expect(e.Close()).To(Succeed())
	})

	It("builds an openai embedder with an explicit key", func() {
		e, err := embeddingutils.NewEmbedder(&embeddingutils.NewEmbedderOpts{
			ProviderType: "openai",
			Model:        "text-embedding-3-small",
			APIKey:       "sk-test",
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(e).NotTo(BeNil())
		Expect(e.Close()).To(Succeed())
	})

	It("rejects an unsupported provider", func() {
		_, err := embeddingutils.NewEmbedder(&embeddingutils.NewEmbedderOpts{
			ProviderType: "gguf",
		})
		Expect(err).To(MatchError(ContainSubstring("unsupported embedding provider")))
	})
})
