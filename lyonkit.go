// Package lyonkit provides a Go SDK for the Lyonkit content API.
//
// Lyonkit stores the content of a website: images, pages and their bloks
// (content blocks), posts, quotes, translations, files and JSON documents
// versioned in a git repository. Every resource belongs to the namespace
// of the API key used to reach it.
//
// # Installation
//
//	go get github.com/lyonkit/lyonkit-go
//
// # Quick Start
//
// Read content with a read-only client:
//
//	client, err := lyonkit.NewReadOnlyClient(os.Getenv("LYONKIT_API_KEY"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	page, err := client.GetPage(ctx, "/about/me")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, blok := range page.SortedBloks() {
//	    fmt.Println(blok.ComponentID, blok.Props)
//	}
//
// Mutate content with a write client, which also exposes every read
// operation:
//
//	client, err := lyonkit.NewWriteClient(apiKey,
//	    lyonkit.WithEndpoint("https://lyonkit.example.com"),
//	)
//	post, err := client.CreatePost(ctx, lyonkit.PostInput{
//	    Title: "Hello",
//	    Slug:  "hello",
//	    Body:  map[string]any{"type": "doc"},
//	})
//
// # Configuration
//
// Clients can also be built from a YAML file ([LoadConfig]) or from the
// LYONKIT_* environment variables and a .env file ([LoadEnvConfig]):
//
//	cfg, err := lyonkit.LoadEnvConfig()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	client, err := cfg.NewReadOnlyClient()
//
// # Read and write capabilities
//
// [ReadOnlyClient] implements [ReadAPI]. [WriteClient] embeds a
// ReadOnlyClient and implements [WriteAPI], which embeds ReadAPI. Code that
// only reads should depend on ReadAPI.
//
// # Error Handling
//
// Every failure is an *[Error]. Sentinels can be matched with errors.Is:
//
//	_, err := client.GetPost(ctx, 42)
//	if errors.Is(err, lyonkit.ErrNotFound) {
//	    // Handle not found
//	}
//
// The client does not validate inputs, retry, cache or paginate: each call
// is one HTTP request and server-side failures are returned unmodified.
//
// # Thread Safety
//
// Clients are immutable after construction and safe for concurrent use by
// multiple goroutines.
package lyonkit
