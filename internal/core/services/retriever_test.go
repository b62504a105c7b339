package services

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codexankiiit31/Student-Career-Analyser-Agent/internal/chunker"
	"github.com/codexankiiit31/Student-Career-Analyser-Agent/internal/core/domain"
)

func newTestRetriever(t *testing.T, raw *mockRawStore, manifests *mockManifestStore) (*RetrieverService, string) {
	t.Helper()
	dir := t.TempDir()
	splitter := chunker.New(chunker.WithChunkSize(40), chunker.WithOverlap(10))
	return NewRetrieverService(raw, manifests, newMockEmbedder(), splitter, dir), dir
}

func TestRetrieve_NotReady(t *testing.T) {
	svc, _ := newTestRetriever(t, newMockRawStore(), newMockManifestStore())

	_, err := svc.Retrieve(context.Background(), "data science", "statistics", 3)
	assert.ErrorIs(t, err, domain.ErrNotReady)
}

func TestRetrieve_InvalidK(t *testing.T) {
	svc, _ := newTestRetriever(t, newMockRawStore(), newMockManifestStore())

	_, err := svc.Retrieve(context.Background(), "data science", "statistics", 0)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestEnsureReady_NoDocuments(t *testing.T) {
	svc, _ := newTestRetriever(t, newMockRawStore(), newMockManifestStore())

	err := svc.EnsureReady(context.Background(), "data science")
	assert.ErrorIs(t, err, domain.ErrNoDocuments)
}

func TestEnsureReady_BuildsAndRetrieves(t *testing.T) {
	raw := newMockRawStore()
	raw.docs["data_science"] = "Python is great for data science. Statistics is the foundation of analysis. Linear algebra helps with machine learning."
	manifests := newMockManifestStore()
	svc, dir := newTestRetriever(t, raw, manifests)
	ctx := context.Background()

	require.NoError(t, svc.EnsureReady(ctx, "Data Science"))
	assert.True(t, svc.Ready("data science"))

	// Both artifacts were persisted.
	_, err := os.Stat(filepath.Join(dir, "data_science"+indexSuffix))
	require.NoError(t, err)
	assert.NotEmpty(t, manifests.manifests["data_science"])

	chunks, err := svc.Retrieve(ctx, "data science", "statistics", 2)
	require.NoError(t, err)
	assert.NotEmpty(t, chunks)
	assert.LessOrEqual(t, len(chunks), 2)
}

func TestEnsureReady_Idempotent(t *testing.T) {
	raw := newMockRawStore()
	raw.docs["devops"] = "Docker and Kubernetes are core DevOps tools for container orchestration."
	embedder := newMockEmbedder()
	splitter := chunker.New(chunker.WithChunkSize(40), chunker.WithOverlap(10))
	svc := NewRetrieverService(raw, newMockManifestStore(), embedder, splitter, t.TempDir())
	ctx := context.Background()

	require.NoError(t, svc.EnsureReady(ctx, "devops"))
	callsAfterBuild := embedder.calls

	require.NoError(t, svc.EnsureReady(ctx, "devops"))
	assert.Equal(t, callsAfterBuild, embedder.calls, "second EnsureReady must not rebuild")
}

func TestEnsureReady_LoadsPersistedIndex(t *testing.T) {
	raw := newMockRawStore()
	raw.docs["frontend"] = "React components and CSS layout. JavaScript drives interactivity in the browser."
	manifests := newMockManifestStore()
	splitter := chunker.New(chunker.WithChunkSize(40), chunker.WithOverlap(10))
	dir := t.TempDir()
	ctx := context.Background()

	first := NewRetrieverService(raw, manifests, newMockEmbedder(), splitter, dir)
	require.NoError(t, first.EnsureReady(ctx, "frontend"))

	want, err := first.Retrieve(ctx, "frontend", "JavaScript", 2)
	require.NoError(t, err)

	// A fresh service instance restores from disk without re-embedding
	// the corpus.
	embedder := newMockEmbedder()
	second := NewRetrieverService(raw, manifests, embedder, splitter, dir)
	require.NoError(t, second.EnsureReady(ctx, "frontend"))
	assert.Equal(t, 0, embedder.calls, "load must not embed")

	got, err := second.Retrieve(ctx, "frontend", "JavaScript", 2)
	require.NoError(t, err)
	require.Equal(t, len(want), len(got))
	for i := range want {
		assert.Equal(t, want[i].Content, got[i].Content)
	}
}

func TestEnsureReady_CorruptIndexTriggersRebuild(t *testing.T) {
	raw := newMockRawStore()
	raw.docs["backend"] = "Go and PostgreSQL make a solid backend stack. APIs need careful error handling."
	manifests := newMockManifestStore()
	splitter := chunker.New(chunker.WithChunkSize(40), chunker.WithOverlap(10))
	dir := t.TempDir()
	ctx := context.Background()

	// Plant a corrupt index file.
	path := filepath.Join(dir, "backend"+indexSuffix)
	require.NoError(t, os.WriteFile(path, []byte("garbage"), 0600))

	svc := NewRetrieverService(raw, manifests, newMockEmbedder(), splitter, dir)
	require.NoError(t, svc.EnsureReady(ctx, "backend"), "corrupt state must trigger rebuild, not fail")
	assert.True(t, svc.Ready("backend"))
}

func TestEnsureReady_CountMismatchTriggersRebuild(t *testing.T) {
	raw := newMockRawStore()
	raw.docs["android"] = "Kotlin is the preferred language for Android development today."
	manifests := newMockManifestStore()
	splitter := chunker.New(chunker.WithChunkSize(40), chunker.WithOverlap(10))
	dir := t.TempDir()
	ctx := context.Background()

	svc := NewRetrieverService(raw, manifests, newMockEmbedder(), splitter, dir)
	require.NoError(t, svc.EnsureReady(ctx, "android"))

	// Tamper with the manifest so counts no longer line up.
	manifests.manifests["android"] = manifests.manifests["android"][:1]

	fresh := NewRetrieverService(raw, manifests, newMockEmbedder(), splitter, dir)
	require.NoError(t, fresh.EnsureReady(ctx, "android"))
	assert.True(t, fresh.Ready("android"))
}

func TestRebuild_DiscardsOldIndex(t *testing.T) {
	raw := newMockRawStore()
	raw.docs["ios"] = "Swift and Xcode basics for building iOS applications from scratch."
	svc, _ := newTestRetriever(t, raw, newMockManifestStore())
	ctx := context.Background()

	require.NoError(t, svc.EnsureReady(ctx, "ios"))

	raw.docs["ios"] = "SwiftUI replaces UIKit for declarative interface construction on Apple platforms."
	require.NoError(t, svc.Rebuild(ctx, "ios"))

	chunks, err := svc.Retrieve(ctx, "ios", "SwiftUI", 5)
	require.NoError(t, err)
	joined := ""
	for _, c := range chunks {
		joined += c.Content
	}
	assert.Contains(t, joined, "SwiftUI")
}

func TestRetrieve_TopicsAreIndependent(t *testing.T) {
	raw := newMockRawStore()
	raw.docs["python"] = "Python syntax and standard library fundamentals for new programmers."
	raw.docs["java"] = "Java classes, interfaces and the JVM runtime model explained."
	svc, _ := newTestRetriever(t, raw, newMockManifestStore())
	ctx := context.Background()

	require.NoError(t, svc.EnsureReady(ctx, "python"))

	// Building one topic leaves the other unbuilt.
	_, err := svc.Retrieve(ctx, "java", "JVM", 2)
	assert.ErrorIs(t, err, domain.ErrNotReady)

	require.NoError(t, svc.EnsureReady(ctx, "java"))
	chunks, err := svc.Retrieve(ctx, "java", "JVM", 2)
	require.NoError(t, err)
	assert.NotEmpty(t, chunks)
}
