package selfupdate

import (
	"archive/tar"
	"archive/zip"
	"bytes"
	"compress/gzip"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

var (
	ErrDevBuild      = errors.New("cannot update a development build")
	ErrAlreadyLatest = errors.New("already running the latest version")
	ErrChecksum      = errors.New("checksum verification failed")
)

// UpdateInput names the running version and, optionally, the release tag
// to install. An empty TargetVersion means the latest release.
type UpdateInput struct {
	CurrentVersion string
	TargetVersion  string
}

// UpdateProgress is reported once per stage: check, download, verify,
// extract, apply and done.
type UpdateProgress struct {
	Stage   string
	Message string
}

// IsDevBuild reports whether v is a version stamp of a local build.
func IsDevBuild(v string) bool {
	v = strings.TrimSpace(v)
	return v == "" || v == "(devel)" || v == "dev"
}

// Update replaces the running binary with the release archive for this
// platform after verifying it against the release's checksums.txt.
func (c *Checker) Update(ctx context.Context, input *UpdateInput, progress func(UpdateProgress)) error {
	if IsDevBuild(input.CurrentVersion) {
		return ErrDevBuild
	}
	report := func(stage, msg string) {
		slog.DebugContext(ctx, "Self-update", "stage", stage, "message", msg)
		if progress != nil {
			progress(UpdateProgress{Stage: stage, Message: msg})
		}
	}

	tag, err := c.resolveTag(ctx, input, report)
	if err != nil {
		return err
	}
	asset, err := assetName()
	if err != nil {
		return err
	}

	binary, err := c.fetchBinary(ctx, tag, asset, report)
	if err != nil {
		return err
	}

	report("apply", "Applying update...")
	target, err := c.execPath()
	if err != nil {
		return fmt.Errorf("resolve executable path: %w", err)
	}
	sum := sha256.Sum256(binary)
	if err := applyUpdate(binary, target, sum[:]); err != nil {
		return fmt.Errorf("apply update: %w", err)
	}

	report("done", "Updated to "+tag)
	return nil
}

// resolveTag returns the pinned target tag, or asks the release API for the
// latest one when none is pinned.
func (c *Checker) resolveTag(ctx context.Context, input *UpdateInput, report func(stage, msg string)) (string, error) {
	if input.TargetVersion != "" {
		return input.TargetVersion, nil
	}
	report("check", "Checking for latest version...")
	res, err := c.Check(ctx, &CheckInput{Version: input.CurrentVersion})
	if err != nil {
		return "", fmt.Errorf("check for updates: %w", err)
	}
	if !res.UpdateAvailable {
		return "", ErrAlreadyLatest
	}
	return res.LatestVersion, nil
}

func (c *Checker) releaseURL(tag, file string) string {
	return fmt.Sprintf("%s/%s/%s/releases/download/%s/%s",
		strings.TrimRight(c.downloadBaseURL, "/"), c.owner, c.repo, tag, file)
}

// fetchBinary downloads the archive of tag, checks it against the release
// checksums and returns the binary inside it.
func (c *Checker) fetchBinary(ctx context.Context, tag, asset string, report func(stage, msg string)) ([]byte, error) {
	report("download", fmt.Sprintf("Downloading %s...", tag))
	archive, err := c.downloadFile(ctx, c.releaseURL(tag, asset))
	if err != nil {
		return nil, fmt.Errorf("download archive: %w", err)
	}

	report("verify", "Verifying checksum...")
	sums, err := c.downloadFile(ctx, c.releaseURL(tag, "checksums.txt"))
	if err != nil {
		return nil, fmt.Errorf("download checksums: %w", err)
	}
	want, ok := parseChecksums(sums)[asset]
	if !ok {
		return nil, fmt.Errorf("no checksum found for %s in checksums.txt", asset)
	}
	if err := verifyChecksum(archive, want); err != nil {
		return nil, err
	}

	report("extract", "Extracting binary...")
	binary, err := extractBinary(archive, asset)
	if err != nil {
		return nil, fmt.Errorf("extract binary: %w", err)
	}
	return binary, nil
}

func assetName() (string, error) {
	return assetNameFor(runtime.GOOS, runtime.GOARCH)
}

// releaseArch maps GOARCH to the architecture label used in release asset
// names. macOS ships a single universal archive.
var releaseArch = map[string]string{
	"amd64": "x86_64",
	"arm64": "arm64",
	"386":   "i386",
}

func assetNameFor(goos, goarch string) (string, error) {
	if goos == "darwin" {
		return binaryName + "_Darwin_all.tar.gz", nil
	}

	var osLabel, ext string
	switch goos {
	case "linux":
		osLabel, ext = "Linux", ".tar.gz"
	case "windows":
		osLabel, ext = "Windows", ".zip"
	default:
		return "", fmt.Errorf("unsupported operating system: %s", goos)
	}

	arch, ok := releaseArch[goarch]
	if !ok {
		return "", fmt.Errorf("unsupported architecture: %s", goarch)
	}
	return fmt.Sprintf("%s_%s_%s%s", binaryName, osLabel, arch, ext), nil
}

const (
	binaryName = "mathwhiz"

	// maxDownloadSize is the default bound on any single release download
	// and on the extracted binary.
	maxDownloadSize = 200 << 20
)

func (c *Checker) downloadFile(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d for %s", resp.StatusCode, url)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, c.maxDownload+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > c.maxDownload {
		return nil, fmt.Errorf("%s is larger than %d bytes", url, c.maxDownload)
	}
	return data, nil
}

// parseChecksums reads "<sha256>  <file>" lines as written by sha256sum.
// Malformed lines are skipped.
func parseChecksums(data []byte) map[string]string {
	sums := make(map[string]string)
	for line := range strings.Lines(string(data)) {
		fields := strings.Fields(line)
		if len(fields) == 2 {
			sums[fields[1]] = fields[0]
		}
	}
	return sums
}

func verifyChecksum(data []byte, expectedHex string) error {
	sum := sha256.Sum256(data)
	if actual := hex.EncodeToString(sum[:]); actual != expectedHex {
		return fmt.Errorf("%w: expected %s, got %s", ErrChecksum, expectedHex, actual)
	}
	return nil
}

func extractBinary(archiveData []byte, asset string) ([]byte, error) {
	if strings.HasSuffix(asset, ".zip") {
		return extractFromZip(archiveData, binaryName+".exe")
	}
	return extractFromTarGz(archiveData, binaryName)
}

func extractFromTarGz(data []byte, name string) ([]byte, error) {
	gz, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("open gzip: %w", err)
	}
	defer func() { _ = gz.Close() }()

	tr := tar.NewReader(gz)
	for {
		hdr, err := tr.Next()
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("binary %q not found in archive", name)
		}
		if err != nil {
			return nil, fmt.Errorf("read tar: %w", err)
		}
		if hdr.Typeflag == tar.TypeReg && filepath.Base(hdr.Name) == name {
			return io.ReadAll(io.LimitReader(tr, maxDownloadSize))
		}
	}
}

func extractFromZip(data []byte, name string) ([]byte, error) {
	r, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("open zip: %w", err)
	}
	for _, f := range r.File {
		if filepath.Base(f.Name) != name {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, err
		}
		defer func() { _ = rc.Close() }()
		return io.ReadAll(io.LimitReader(rc, maxDownloadSize))
	}
	return nil, fmt.Errorf("binary %q not found in archive", name)
}

// applyUpdate writes the new binary next to targetPath, checks what landed
// on disk against expectedHash and swaps it in. The previous binary is
// moved aside first and put back if the swap fails.
func applyUpdate(binaryData []byte, targetPath string, expectedHash []byte) error {
	info, err := os.Stat(targetPath)
	if err != nil {
		return fmt.Errorf("stat target: %w", err)
	}

	tmpDir, err := os.MkdirTemp(filepath.Dir(targetPath), "."+binaryName+"-update-*")
	if err != nil {
		return fmt.Errorf("create temp dir: %w", err)
	}
	defer func() { _ = os.RemoveAll(tmpDir) }()

	newPath := filepath.Join(tmpDir, binaryName+"-new")
	if err := os.WriteFile(newPath, binaryData, 0o600); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}

	written, err := os.ReadFile(newPath)
	if err != nil {
		return fmt.Errorf("re-read temp file: %w", err)
	}
	if sum := sha256.Sum256(written); !bytes.Equal(sum[:], expectedHash) {
		return fmt.Errorf("%w: temp file was tampered with after write", ErrChecksum)
	}
	if err := os.Chmod(newPath, info.Mode().Perm()); err != nil {
		return fmt.Errorf("chmod: %w", err)
	}

	oldPath := filepath.Join(tmpDir, binaryName+"-old")
	if err := os.Rename(targetPath, oldPath); err != nil {
		return fmt.Errorf("move current binary aside: %w", err)
	}
	if err := os.Rename(newPath, targetPath); err != nil {
		if rerr := os.Rename(oldPath, targetPath); rerr != nil {
			return fmt.Errorf("rename: %w (restore failed: %v)", err, rerr)
		}
		return fmt.Errorf("rename: %w", err)
	}
	return nil
}
