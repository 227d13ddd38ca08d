package asset_path

import (
	"fmt"
	"path/filepath"
	"strings"

	bundleErrors "github.com/Motmedel/bundle_server/pkg/bundle/errors"
	bundleServerErrors "github.com/Motmedel/bundle_server/pkg/errors"
)

// Within reports whether path is root itself or lies beneath it. Both must be clean and absolute.
func Within(root string, path string) bool {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}

	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)) && !filepath.IsAbs(rel)
}

// Resolve maps a slash-separated request path onto the filesystem below root, normalizing "." and ".." segments
// lexically. A path that would end up outside of root is rejected with ErrOutsideRoot.
func Resolve(root string, requestPath string) (string, error) {
	if root == "" {
		return "", bundleServerErrors.NewWithTrace(bundleErrors.ErrEmptyRootDirectory)
	}

	if strings.IndexByte(requestPath, 0) != -1 {
		return "", bundleServerErrors.NewWithTrace(
			fmt.Errorf("%w: nul byte", bundleErrors.ErrInvalidPath),
			requestPath,
		)
	}

	resolvedPath := filepath.Join(root, filepath.FromSlash(requestPath))
	if !Within(root, resolvedPath) {
		return "", bundleServerErrors.NewWithTrace(bundleErrors.ErrOutsideRoot, requestPath)
	}

	return resolvedPath, nil
}

// ResolveReal follows the symbolic links of an existing, already resolved path and rejects targets outside of root.
// root must itself be free of symbolic links.
func ResolveReal(root string, resolvedPath string) (string, error) {
	realPath, err := filepath.EvalSymlinks(resolvedPath)
	if err != nil {
		return "", bundleServerErrors.New(fmt.Errorf("filepath eval symlinks: %w", err), resolvedPath)
	}

	if !Within(root, realPath) {
		return "", bundleServerErrors.NewWithTrace(bundleErrors.ErrOutsideRoot, resolvedPath, realPath)
	}

	return realPath, nil
}
