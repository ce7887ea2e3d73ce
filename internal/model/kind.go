package model

import "strings"

// Kind is the closed set of object families the graph walker understands.
// Isa strings map onto a Kind; every "...BuildPhase" isa maps to KindBuildPhase.
type Kind uint8

const (
	KindUnknown Kind = iota
	KindProject
	KindGroup
	KindVariantGroup
	KindVersionGroup
	KindFileReference
	KindReferenceProxy
	KindConfigurationList
	KindBuildConfiguration
	KindNativeTarget
	KindAggregateTarget
	KindLegacyTarget
	KindTargetDependency
	KindContainerItemProxy
	KindBuildFile
	KindBuildPhase
	KindBuildRule
	KindPackageReference
	KindPackageProduct
)

var kindByIsa = map[string]Kind{
	"PBXProject":                      KindProject,
	"PBXGroup":                        KindGroup,
	"PBXVariantGroup":                 KindVariantGroup,
	"XCVersionGroup":                  KindVersionGroup,
	"PBXFileReference":                KindFileReference,
	"PBXReferenceProxy":               KindReferenceProxy,
	"XCConfigurationList":             KindConfigurationList,
	"XCBuildConfiguration":            KindBuildConfiguration,
	"PBXNativeTarget":                 KindNativeTarget,
	"PBXAggregateTarget":              KindAggregateTarget,
	"PBXLegacyTarget":                 KindLegacyTarget,
	"PBXTargetDependency":             KindTargetDependency,
	"PBXContainerItemProxy":           KindContainerItemProxy,
	"PBXBuildFile":                    KindBuildFile,
	"PBXBuildRule":                    KindBuildRule,
	"XCRemoteSwiftPackageReference":   KindPackageReference,
	"XCLocalSwiftPackageReference":    KindPackageReference,
	"XCSwiftPackageProductDependency": KindPackageProduct,
}

// KindOf classifies an isa string.
func KindOf(isa string) Kind {
	if k, ok := kindByIsa[isa]; ok {
		return k
	}
	if strings.HasSuffix(isa, "BuildPhase") && len(isa) > len("BuildPhase") {
		return KindBuildPhase
	}
	return KindUnknown
}

// String returns a short human-readable family name.
func (k Kind) String() string {
	switch k {
	case KindProject:
		return "project"
	case KindGroup:
		return "group"
	case KindVariantGroup:
		return "variant-group"
	case KindVersionGroup:
		return "version-group"
	case KindFileReference:
		return "file-reference"
	case KindReferenceProxy:
		return "reference-proxy"
	case KindConfigurationList:
		return "configuration-list"
	case KindBuildConfiguration:
		return "build-configuration"
	case KindNativeTarget:
		return "native-target"
	case KindAggregateTarget:
		return "aggregate-target"
	case KindLegacyTarget:
		return "legacy-target"
	case KindTargetDependency:
		return "target-dependency"
	case KindContainerItemProxy:
		return "container-item-proxy"
	case KindBuildFile:
		return "build-file"
	case KindBuildPhase:
		return "build-phase"
	case KindBuildRule:
		return "build-rule"
	case KindPackageReference:
		return "package-reference"
	case KindPackageProduct:
		return "package-product"
	default:
		return "unknown"
	}
}
