package paths

import (
	"path"
	"strings"

	"github.com/jmgilman/go/stridepack/internal/validate"
)

// AssetType is the semantic category of a Stride asset file.
type AssetType int

const (
	// AssetUnknown is any file without a recognized asset extension.
	AssetUnknown AssetType = iota
	AssetPrefab
	AssetScene
	AssetMaterial
	AssetEffect
	AssetTexture
	AssetModel
	AssetSound
	AssetUIPage
	AssetPackage
	AssetSkeleton
	AssetAnimation
	AssetSpriteSheet
)

// assetExtensions maps lower-cased extensions to asset types.
var assetExtensions = map[string]AssetType{
	".sdprefab": AssetPrefab,
	".sdscene":  AssetScene,
	".sdmat":    AssetMaterial,
	".sdfx":     AssetEffect,
	".sdtex":    AssetTexture,
	".sdm3d":    AssetModel,
	".sdsnd":    AssetSound,
	".sdpage":   AssetUIPage,
	".sdpkg":    AssetPackage,
	".sdskel":   AssetSkeleton,
	".sdanim":   AssetAnimation,
	".sdsheet":  AssetSpriteSheet,
}

var assetNames = map[AssetType]string{
	AssetUnknown:     "Unknown",
	AssetPrefab:      "Prefab",
	AssetScene:       "Scene",
	AssetMaterial:    "Material",
	AssetEffect:      "Effect",
	AssetTexture:     "Texture",
	AssetModel:       "Model",
	AssetSound:       "Sound",
	AssetUIPage:      "UIPage",
	AssetPackage:     "Package",
	AssetSkeleton:    "Skeleton",
	AssetAnimation:   "Animation",
	AssetSpriteSheet: "SpriteSheet",
}

// String returns the asset type name.
func (t AssetType) String() string {
	if name, ok := assetNames[t]; ok {
		return name
	}
	return "Unknown"
}

// AssetTypeFromExtension classifies filePath by its extension, ignoring
// case. Missing, unmapped or malformed input yields AssetUnknown.
func AssetTypeFromExtension(filePath string) AssetType {
	if validate.Path(filePath) != nil {
		return AssetUnknown
	}
	base := path.Base(strings.ReplaceAll(filePath, "\\", "/"))
	return assetExtensions[strings.ToLower(path.Ext(base))]
}

// AssetTypeOf classifies filePath by its extension. The file does not need
// to exist.
func (s *Service) AssetTypeOf(filePath string) AssetType {
	return AssetTypeFromExtension(filePath)
}

// IsAsset reports whether filePath has a recognized asset extension.
// The file does not need to exist.
func (s *Service) IsAsset(filePath string) bool {
	return AssetTypeFromExtension(filePath) != AssetUnknown
}
