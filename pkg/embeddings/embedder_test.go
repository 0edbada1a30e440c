package embeddings_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/embedviz/embedviz/pkg/embeddings"
	testutils "github.com/embedviz/embedviz/pkg/utils/test"
)

var _ = Describe("capability lookup", func() {
	It("finds capabilities on a provider directly", func() {
		provider := testutils.NewMockProvider()

		_, ok := embeddings.AsPinger(provider)
		Expect(ok).To(BeTrue())
		_, ok = embeddings.AsLister(provider)
		Expect(ok).To(BeTrue())
		_, ok = embeddings.AsInspector(provider)
		Expect(ok).To(BeTrue())
	})

	It("reports missing capabilities on a bare embedder", func() {
		mock := testutils.NewMockEmbedder()

		_, ok := embeddings.AsPinger(mock)
		Expect(ok).To(BeFalse())
		_, ok = embeddings.AsLister(mock)
		Expect(ok).To(BeFalse())
		_, ok = embeddings.AsInspector(mock)
		Expect(ok).To(BeFalse())
	})

	It("unwraps the caching decorator", func() {
		provider := testutils.NewMockProvider()
		cached, err := embeddings.NewCached(provider, 8)
		Expect(err).NotTo(HaveOccurred())

		pinger, ok := embeddings.AsPinger(cached)
		Expect(ok).To(BeTrue())
		Expect(pinger).NotTo(BeNil())

		lister, ok := embeddings.AsLister(cached)
		Expect(ok).To(BeTrue())
		Expect(lister).NotTo(BeNil())
	})

	It("stops at a bare embedder behind the decorator", func() {
		cached, err := embeddings.NewCached(testutils.NewMockEmbedder(), 8)
		Expect(err).NotTo(HaveOccurred())

		_, ok := embeddings.AsPinger(cached)
		Expect(ok).To(BeFalse())
	})
})
