package syslibs

import (
	"sort"
	"strings"
)

// Family identifies a package manager family. dnf and yum share a family
// because they install the same package names.
type Family string

const (
	FamilyApt    Family = "apt"
	FamilyYum    Family = "yum"
	FamilyPacman Family = "pacman"
	FamilyApk    Family = "apk"
)

// Manager is a detected system package manager.
type Manager struct {
	Family Family
	// Tool is the executable to invoke; dnf and yum both carry FamilyYum.
	Tool string
}

// Detection order: first tool found on PATH wins.
var detectionOrder = []struct {
	tool   string
	family Family
}{
	{"apt-get", FamilyApt},
	{"dnf", FamilyYum},
	{"yum", FamilyYum},
	{"pacman", FamilyPacman},
	{"apk", FamilyApk},
}

// Detect probes PATH for a known package manager and returns nil when none
// is found. which is injectable for tests; production passes
// execx.CommandExists.
func Detect(which func(string) bool) *Manager {
	for _, cand := range detectionOrder {
		if which(cand.tool) {
			return &Manager{Family: cand.family, Tool: cand.tool}
		}
	}
	return nil
}

// InstallCommand returns the argv (without the sudo prefix) that installs
// pkgs with this manager.
func (m *Manager) InstallCommand(pkgs []string) []string {
	switch m.Family {
	case FamilyApt, FamilyYum:
		return append([]string{m.Tool, "install", "-y"}, pkgs...)
	case FamilyPacman:
		return append([]string{m.Tool, "-S", "--noconfirm"}, pkgs...)
	case FamilyApk:
		return append([]string{m.Tool, "add"}, pkgs...)
	}
	return nil
}

// packageEntry maps a library-name substring to the providing package per
// family. The first matching entry wins, so order is part of the contract.
type packageEntry struct {
	substr string
	pkgs   map[Family]string
}

var packageTable = []packageEntry{
	{"libzvbi", map[Family]string{FamilyApt: "libzvbi0", FamilyYum: "zvbi", FamilyPacman: "zvbi", FamilyApk: "zvbi"}},
	{"libsnappy", map[Family]string{FamilyApt: "libsnappy1v5", FamilyYum: "snappy", FamilyPacman: "snappy", FamilyApk: "snappy"}},
	{"libgsm", map[Family]string{FamilyApt: "libgsm1", FamilyYum: "gsm", FamilyPacman: "gsm", FamilyApk: "gsm"}},
	{"libxml2", map[Family]string{FamilyApt: "libxml2", FamilyYum: "libxml2", FamilyPacman: "libxml2", FamilyApk: "libxml2"}},
	{"libosg", map[Family]string{FamilyApt: "libopenscenegraph-dev", FamilyYum: "OpenSceneGraph", FamilyPacman: "openscenegraph", FamilyApk: "openscenegraph"}},
	{"libOpenThreads", map[Family]string{FamilyApt: "libopenscenegraph-dev", FamilyYum: "OpenSceneGraph", FamilyPacman: "openscenegraph", FamilyApk: "openscenegraph"}},
	{"libboost_system", map[Family]string{FamilyApt: "libboost-system1.74.0", FamilyYum: "boost-system", FamilyPacman: "boost-libs", FamilyApk: "boost-system"}},
	{"libboost_filesystem", map[Family]string{FamilyApt: "libboost-filesystem1.74.0", FamilyYum: "boost-filesystem", FamilyPacman: "boost-libs", FamilyApk: "boost-filesystem"}},
	{"libboost_program_options", map[Family]string{FamilyApt: "libboost-program-options1.74.0", FamilyYum: "boost-program-options", FamilyPacman: "boost-libs", FamilyApk: "boost"}},
	{"libboost_iostreams", map[Family]string{FamilyApt: "libboost-iostreams1.74.0", FamilyYum: "boost-iostreams", FamilyPacman: "boost-libs", FamilyApk: "boost-iostreams"}},
	{"libopenal", map[Family]string{FamilyApt: "libopenal1", FamilyYum: "openal-soft", FamilyPacman: "openal", FamilyApk: "openal-soft"}},
	{"libavcodec", map[Family]string{FamilyApt: "libavcodec-dev", FamilyYum: "ffmpeg-libs", FamilyPacman: "ffmpeg", FamilyApk: "ffmpeg-libs"}},
	{"libavformat", map[Family]string{FamilyApt: "libavformat-dev", FamilyYum: "ffmpeg-libs", FamilyPacman: "ffmpeg", FamilyApk: "ffmpeg-libs"}},
	{"libavutil", map[Family]string{FamilyApt: "libavutil-dev", FamilyYum: "ffmpeg-libs", FamilyPacman: "ffmpeg", FamilyApk: "ffmpeg-libs"}},
	{"libswscale", map[Family]string{FamilyApt: "libswscale-dev", FamilyYum: "ffmpeg-libs", FamilyPacman: "ffmpeg", FamilyApk: "ffmpeg-libs"}},
	{"libswresample", map[Family]string{FamilyApt: "libswresample-dev", FamilyYum: "ffmpeg-libs", FamilyPacman: "ffmpeg", FamilyApk: "ffmpeg-libs"}},
	{"libMyGUIEngine", map[Family]string{FamilyApt: "libmygui-dev", FamilyYum: "mygui", FamilyPacman: "mygui", FamilyApk: "mygui"}},
	{"libBullet", map[Family]string{FamilyApt: "libbullet-dev", FamilyYum: "bullet", FamilyPacman: "bullet", FamilyApk: "bullet"}},
	{"libLinearMath", map[Family]string{FamilyApt: "libbullet-dev", FamilyYum: "bullet", FamilyPacman: "bullet", FamilyApk: "bullet"}},
	{"libluajit", map[Family]string{FamilyApt: "libluajit-5.1-2", FamilyYum: "luajit", FamilyPacman: "luajit", FamilyApk: "luajit"}},
}

// Lookup resolves missing library names to a deduplicated, sorted package
// list for the family. Libraries with no table entry come back in unmatched
// and must be handled manually.
func Lookup(missing []string, family Family) (packages []string, unmatched []string) {
	seen := make(map[string]bool)
	for _, lib := range missing {
		entry := matchEntry(lib)
		if entry == nil {
			unmatched = append(unmatched, lib)
			continue
		}
		pkg, ok := entry.pkgs[family]
		if !ok {
			unmatched = append(unmatched, lib)
			continue
		}
		if !seen[pkg] {
			seen[pkg] = true
			packages = append(packages, pkg)
		}
	}
	sort.Strings(packages)
	return packages, unmatched
}

func matchEntry(lib string) *packageEntry {
	for i := range packageTable {
		if strings.Contains(lib, packageTable[i].substr) {
			return &packageTable[i]
		}
	}
	return nil
}
