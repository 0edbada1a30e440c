package credentials_test

import (
	"os"
	"path/filepath"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/embedviz/embedviz/pkg/credentials"
)

func TestCredentials(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Credentials Suite")
}

var _ = Describe("Manager", func() {
	var (
		tmpDir string
		mgr    *credentials.Manager
	)

	BeforeEach(func() {
		var err error
		tmpDir, err = os.MkdirTemp("", "credentials-test-*")
		Expect(err).NotTo(HaveOccurred())

		mgr, err = credentials.NewManager(tmpDir)
		Expect(err).NotTo(HaveOccurred())
	})

	AfterEach(func() {
		os.RemoveAll(tmpDir)
	})

	Describe("NewManager", func() {
		It("binds to credentials.toml inside the override directory", func() {
			Expect(mgr.GetTarget()).To(Equal(filepath.Join(tmpDir, "credentials.toml")))
		})
	})

	Describe("Load", func() {
		It("returns an empty store before any key is saved", func() {
			creds, err := mgr.Load()
			Expect(err).NotTo(HaveOccurred())
			Expect(creds.Providers).To(BeEmpty())
		})

		It("reads keys written by an earlier run", func() {
			onDisk := `version = 0

[providers.openai]
api_key = "sk-proj-embedviz"
`
			err := os.WriteFile(mgr.GetTarget(), []byte(onDisk), 0o600)
			Expect(err).NotTo(HaveOccurred())

			creds, err := mgr.Load()
			Expect(err).NotTo(HaveOccurred())
			Expect(creds.Providers["openai"].APIKey).To(Equal("sk-proj-embedviz"))
		})

		It("surfaces malformed TOML", func() {
			err := os.WriteFile(mgr.GetTarget(), []byte("not valid [[["), 0o600)
			Expect(err).NotTo(HaveOccurred())

			creds, err := mgr.Load()
			Expect(err).To(HaveOccurred())
			Expect(creds).To(BeNil())
		})
	})

	Describe("Save", func() {
		It("writes the file with owner-only permissions", func() {
			err := mgr.Save(&credentials.Credentials{
				Providers: map[string]credentials.ProviderCredential{
					"openai": {APIKey: "sk-proj-embedviz"},
				},
			})
			Expect(err).NotTo(HaveOccurred())

			info, err := os.Stat(mgr.GetTarget())
			Expect(err).NotTo(HaveOccurred())
			Expect(info.Mode().Perm()).To(Equal(os.FileMode(0o600)))
		})

		It("rejects a nil store", func() {
			Expect(mgr.Save(nil)).To(HaveOccurred())
		})
	})

	Describe("SetKey and GetKey", func() {
		It("round-trips a key", func() {
			Expect(mgr.SetKey("openai", "sk-proj-first")).To(Succeed())

			key, err := mgr.GetKey("openai")
			Expect(err).NotTo(HaveOccurred())
			Expect(key).To(Equal("sk-proj-first"))
		})

		It("replaces an existing key", func() {
			Expect(mgr.SetKey("openai", "sk-proj-old")).To(Succeed())
			Expect(mgr.SetKey("openai", "sk-proj-new")).To(Succeed())

			key, err := mgr.GetKey("openai")
			Expect(err).NotTo(HaveOccurred())
			Expect(key).To(Equal("sk-proj-new"))
		})

		It("leaves other providers' keys alone", func() {
			Expect(mgr.SetKey("openai", "sk-proj-a")).To(Succeed())
			Expect(mgr.SetKey("ollama", "bearer-b")).To(Succeed())

			key, err := mgr.GetKey("openai")
			Expect(err).NotTo(HaveOccurred())
			Expect(key).To(Equal("sk-proj-a"))

			key, err = mgr.GetKey("ollama")
			Expect(err).NotTo(HaveOccurred())
			Expect(key).To(Equal("bearer-b"))
		})

		It("returns empty for a provider with no stored key", func() {
			key, err := mgr.GetKey("nonexistent")
			Expect(err).NotTo(HaveOccurred())
			Expect(key).To(BeEmpty())
		})
	})

	Describe("RemoveKey", func() {
		It("deletes a stored key", func() {
			Expect(mgr.SetKey("openai", "sk-proj-doomed")).To(Succeed())
			Expect(mgr.RemoveKey("openai")).To(Succeed())

			key, err := mgr.GetKey("openai")
			Expect(err).NotTo(HaveOccurred())
			Expect(key).To(BeEmpty())
		})

		It("tolerates removing a provider that was never stored", func() {
			Expect(mgr.RemoveKey("nonexistent")).To(Succeed())
		})
	})

	Describe("ListProviders", func() {
		It("is empty before any key is stored", func() {
			providers, err := mgr.ListProviders()
			Expect(err).NotTo(HaveOccurred())
			Expect(providers).To(BeEmpty())
		})

		It("returns stored providers in sorted order", func() {
			Expect(mgr.SetKey("openai", "sk-1")).To(Succeed())
			Expect(mgr.SetKey("ollama", "sk-2")).To(Succeed())

			providers, err := mgr.ListProviders()
			Expect(err).NotTo(HaveOccurred())
			Expect(providers).To(Equal([]string{"ollama", "openai"}))
		})
	})
})

var _ = Describe("EnvVarForProvider", func() {
	It("maps openai to OPENAI_API_KEY", func() {
		Expect(credentials.EnvVarForProvider("openai")).To(Equal("OPENAI_API_KEY"))
	})

	It("is empty for unknown providers", func() {
		Expect(credentials.EnvVarForProvider("unknown")).To(BeEmpty())
	})
})

var _ = Describe("SupportedProviders", func() {
	It("lists only providers that take an API key", func() {
		Expect(credentials.SupportedProviders()).To(ConsistOf("openai"))
	})
})

var _ = Describe("IsSupportedProvider", func() {
	It("accepts openai", func() {
		Expect(credentials.IsSupportedProvider("openai")).To(BeTrue())
	})

	It("rejects ollama and unknown names", func() {
		Expect(credentials.IsSupportedProvider("ollama")).To(BeFalse())
		Expect(credentials.IsSupportedProvider("unknown")).To(BeFalse())
	})
})
