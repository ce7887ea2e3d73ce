// Package testkit holds fixtures and invariant checks shared by package tests.
package testkit

// SampleProject is a small two-target project file (App depends on Core) in
// the layout Xcode writes. Identifiers are deliberately non-canonical and
// several sibling lists are out of order.
const SampleProject = `// !$*UTF8*$!
{
	archiveVersion = 1;
	classes = {
	};
	objectVersion = 56;
	objects = {

/* Begin PBXBuildFile section */
		AA000000000000000000000C /* a.swift in Sources */ = {isa = PBXBuildFile; fileRef = AA0000000000000000000004 /* a.swift */; };
		AA000000000000000000000D /* b.swift in Sources */ = {isa = PBXBuildFile; fileRef = AA0000000000000000000005 /* b.swift */; };
/* End PBXBuildFile section */

/* Begin PBXContainerItemProxy section */
		AA000000000000000000000F /* PBXContainerItemProxy */ = {
			isa = PBXContainerItemProxy;
			containerPortal = AA0000000000000000000001 /* Project object */;
			proxyType = 1;
			remoteGlobalIDString = AA0000000000000000000010;
			remoteInfo = Core;
		};
/* End PBXContainerItemProxy section */

/* Begin PBXFileReference section */
		AA0000000000000000000004 /* a.swift */ = {isa = PBXFileReference; lastKnownFileType = sourcecode.swift; path = a.swift; sourceTree = "<group>"; };
		AA0000000000000000000005 /* b.swift */ = {isa = PBXFileReference; lastKnownFileType = sourcecode.swift; path = b.swift; sourceTree = "<group>"; };
		AA0000000000000000000007 /* App.app */ = {isa = PBXFileReference; explicitFileType = wrapper.application; includeInIndex = 0; path = App.app; sourceTree = BUILT_PRODUCTS_DIR; };
/* End PBXFileReference section */

/* Begin PBXGroup section */
		AA0000000000000000000002 = {
			isa = PBXGroup;
			children = (
				AA0000000000000000000003 /* Sources */,
				AA0000000000000000000006 /* Products */,
			);
			sourceTree = "<group>";
		};
		AA0000000000000000000003 /* Sources */ = {
			isa = PBXGroup;
			children = (
				AA0000000000000000000005 /* b.swift */,
				AA0000000000000000000004 /* a.swift */,
			);
			path = Sources;
			sourceTree = "<group>";
		};
		AA0000000000000000000006 /* Products */ = {
			isa = PBXGroup;
			children = (
				AA0000000000000000000007 /* App.app */,
			);
			name = Products;
			sourceTree = "<group>";
		};
/* End PBXGroup section */

/* Begin PBXNativeTarget section */
		AA0000000000000000000008 /* App */ = {
			isa = PBXNativeTarget;
			buildConfigurationList = AA0000000000000000000009 /* Build configuration list for PBXNativeTarget "App" */;
			buildPhases = (
				AA000000000000000000000B /* Sources */,
			);
			buildRules = (
			);
			dependencies = (
				AA000000000000000000000E /* PBXTargetDependency */,
			);
			name = App;
			productName = App;
			productReference = AA0000000000000000000007 /* App.app */;
			productType = "com.apple.product-type.application";
		};
		AA0000000000000000000010 /* Core */ = {
			isa = PBXNativeTarget;
			buildConfigurationList = AA0000000000000000000011 /* Build configuration list for PBXNativeTarget "Core" */;
			buildPhases = (
				AA0000000000000000000013 /* Sources */,
			);
			buildRules = (
			);
			dependencies = (
			);
			name = Core;
			productName = Core;
			productType = "com.apple.product-type.library.static";
		};
/* End PBXNativeTarget section */

/* Begin PBXProject section */
		AA0000000000000000000001 /* Project object */ = {
			isa = PBXProject;
			attributes = {
				LastUpgradeCheck = 1500;
				TargetAttributes = {
					AA0000000000000000000008 = {
						CreatedOnToolsVersion = 15.0;
					};
					AA0000000000000000000010 = {
						CreatedOnToolsVersion = 15.0;
					};
				};
			};
			buildConfigurationList = AA0000000000000000000014 /* Build configuration list for PBXProject "App" */;
			compatibilityVersion = "Xcode 14.0";
			mainGroup = AA0000000000000000000002;
			productRefGroup = AA0000000000000000000006 /* Products */;
			projectDirPath = "";
			projectRoot = "";
			targets = (
				AA0000000000000000000008 /* App */,
				AA0000000000000000000010 /* Core */,
			);
		};
/* End PBXProject section */

/* Begin PBXSourcesBuildPhase section */
		AA000000000000000000000B /* Sources */ = {
			isa = PBXSourcesBuildPhase;
			buildActionMask = 2147483647;
			files = (
				AA000000000000000000000D /* b.swift in Sources */,
				AA000000000000000000000C /* a.swift in Sources */,
			);
			runOnlyForDeploymentPostprocessing = 0;
		};
		AA0000000000000000000013 /* Sources */ = {
			isa = PBXSourcesBuildPhase;
			buildActionMask = 2147483647;
			files = (
			);
			runOnlyForDeploymentPostprocessing = 0;
		};
/* End PBXSourcesBuildPhase section */

/* Begin PBXTargetDependency section */
		AA000000000000000000000E /* PBXTargetDependency */ = {
			isa = PBXTargetDependency;
			target = AA0000000000000000000010 /* Core */;
			targetProxy = AA000000000000000000000F /* PBXContainerItemProxy */;
		};
/* End PBXTargetDependency section */

/* Begin XCBuildConfiguration section */
		AA000000000000000000000A /* Debug */ = {
			isa = XCBuildConfiguration;
			buildSettings = {
				PRODUCT_NAME = "$(TARGET_NAME)";
			};
			name = Debug;
		};
		AA0000000000000000000012 /* Debug */ = {
			isa = XCBuildConfiguration;
			buildSettings = {
				PRODUCT_NAME = "$(TARGET_NAME)";
			};
			name = Debug;
		};
		AA0000000000000000000015 /* Debug */ = {
			isa = XCBuildConfiguration;
			buildSettings = {
				SWIFT_VERSION = 5.0;
			};
			name = Debug;
		};
/* End XCBuildConfiguration section */

/* Begin XCConfigurationList section */
		AA0000000000000000000009 /* Build configuration list for PBXNativeTarget "App" */ = {
			isa = XCConfigurationList;
			buildConfigurations = (
				AA000000000000000000000A /* Debug */,
			);
			defaultConfigurationIsVisible = 0;
			defaultConfigurationName = Debug;
		};
		AA0000000000000000000011 /* Build configuration list for PBXNativeTarget "Core" */ = {
			isa = XCConfigurationList;
			buildConfigurations = (
				AA0000000000000000000012 /* Debug */,
			);
			defaultConfigurationIsVisible = 0;
			defaultConfigurationName = Debug;
		};
		AA0000000000000000000014 /* Build configuration list for PBXProject "App" */ = {
			isa = XCConfigurationList;
			buildConfigurations = (
				AA0000000000000000000015 /* Debug */,
			);
			defaultConfigurationIsVisible = 0;
			defaultConfigurationName = Debug;
		};
/* End XCConfigurationList section */
	};
	rootObject = AA0000000000000000000001 /* Project object */;
}
`

// Sample object identifiers, by role.
const (
	IDProject         = "AA0000000000000000000001"
	IDMainGroup       = "AA0000000000000000000002"
	IDSourcesGroup    = "AA0000000000000000000003"
	IDFileA           = "AA0000000000000000000004"
	IDFileB           = "AA0000000000000000000005"
	IDProductsGroup   = "AA0000000000000000000006"
	IDAppProduct      = "AA0000000000000000000007"
	IDAppTarget       = "AA0000000000000000000008"
	IDAppConfigList   = "AA0000000000000000000009"
	IDAppDebug        = "AA000000000000000000000A"
	IDAppSources      = "AA000000000000000000000B"
	IDBuildFileA      = "AA000000000000000000000C"
	IDBuildFileB      = "AA000000000000000000000D"
	IDDependency      = "AA000000000000000000000E"
	IDProxy           = "AA000000000000000000000F"
	IDCoreTarget      = "AA0000000000000000000010"
	IDCoreConfigList  = "AA0000000000000000000011"
	IDCoreDebug       = "AA0000000000000000000012"
	IDCoreSources     = "AA0000000000000000000013"
	IDProjConfigList  = "AA0000000000000000000014"
	IDProjDebug       = "AA0000000000000000000015"
	SampleObjectCount = 21
)
