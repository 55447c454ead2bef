package assets

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/spaghettifunk/tessera/engine/assets/loaders"
	"github.com/spaghettifunk/tessera/engine/core"
	"github.com/spaghettifunk/tessera/engine/renderer/metadata"
)

type AssetInfo struct {
	Path       string
	Type       metadata.ResourceType
	LastLoaded time.Time
}

// AssetManager indexes the files under an asset directory, loads them with the
// loader registered for their type and, when watching, fires
// EVENT_CODE_MANIFEST_CHANGED whenever a manifest is created or written.
type AssetManager struct {
	assets  map[string]AssetInfo
	loaders map[metadata.ResourceType]Loader

	mutex sync.RWMutex

	events *core.EventSystem

	done     chan struct{}
	wg       sync.WaitGroup
	fsnotify *fsnotify.Watcher
	watching bool
	isClosed bool
}

func NewAssetManager(events *core.EventSystem) (*AssetManager, error) {
	fsWatch, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	return &AssetManager{
		assets:   make(map[string]AssetInfo),
		loaders:  make(map[metadata.ResourceType]Loader),
		events:   events,
		fsnotify: fsWatch,
		done:     make(chan struct{}),
	}, nil
}

// Initialize indexes assetsDir and registers the loaders. With watch set, the
// directory tree is also watched for changes until Shutdown.
func (am *AssetManager) Initialize(assetsDir string, watch bool) error {
	// Register loaders
	am.registerLoader(metadata.ResourceTypeManifest, &loaders.ManifestLoader{})
	am.registerLoader(metadata.ResourceTypeGeometry, &loaders.BinaryLoader{})

	if !watch {
		return am.indexRecursive(assetsDir)
	}

	am.watching = true
	am.wg.Add(1)
	go am.start()

	return am.addRecursive(assetsDir)
}

func (am *AssetManager) Shutdown() error {
	am.mutex.Lock()
	if am.isClosed {
		am.mutex.Unlock()
		return nil
	}
	am.isClosed = true
	am.mutex.Unlock()

	close(am.done)
	am.wg.Wait()

	if !am.watching {
		return am.fsnotify.Close()
	}
	return nil
}

// AddRecursive starts watching the named directory and all sub-directories.
func (am *AssetManager) addRecursive(name string) error {
	if am.isClosed {
		return errors.New("asset watcher already closed")
	}
	return am.watchRecursive(name)
}

// Register loaders for each asset type
func (am *AssetManager) registerLoader(assetType metadata.ResourceType, loader Loader) {
	am.loaders[assetType] = loader
}

// LoadAsset loads an indexed asset with the loader registered for its type.
func (am *AssetManager) LoadAsset(path string, resourceType metadata.ResourceType, params interface{}) (*metadata.Resource, error) {
	path = filepath.Clean(path)

	am.mutex.Lock()
	asset, exists := am.assets[path]
	if exists {
		// Update the loaded time
		asset.LastLoaded = time.Now()
		am.assets[path] = asset
	}
	am.mutex.Unlock()

	if !exists {
		return nil, fmt.Errorf("asset not found: %s", path)
	}
	if asset.Type != resourceType {
		return nil, fmt.Errorf("asset %s has type %d, requested %d", path, asset.Type, resourceType)
	}

	loader, loaderExists := am.loaders[asset.Type]
	if !loaderExists {
		return nil, fmt.Errorf("no loader registered for asset type: %d", asset.Type)
	}

	return loader.Load(path, resourceType, params)
}

func (am *AssetManager) UnloadAsset(asset *metadata.Resource) error {
	path := filepath.Clean(asset.FullPath)

	am.mutex.RLock()
	info, exists := am.assets[path]
	am.mutex.RUnlock()

	if !exists {
		return fmt.Errorf("asset not found: %s", path)
	}
	loader, loaderExists := am.loaders[info.Type]
	if !loaderExists {
		return fmt.Errorf("no loader registered for asset type: %d", info.Type)
	}
	return loader.Unload(asset)
}

// Assets returns the indexed paths of the given type.
func (am *AssetManager) Assets(resourceType metadata.ResourceType) []string {
	am.mutex.RLock()
	defer am.mutex.RUnlock()

	var paths []string
	for path, info := range am.assets {
		if info.Type == resourceType {
			paths = append(paths, path)
		}
	}
	return paths
}

func (am *AssetManager) start() {
	defer am.wg.Done()
	for {
		select {

		case e, ok := <-am.fsnotify.Events:
			if !ok {
				return
			}
			s, err := os.Stat(e.Name)
			if err == nil && s != nil && s.IsDir() {
				if e.Op&fsnotify.Create != 0 {
					if err := am.watchRecursive(e.Name); err != nil {
						core.LogWarn("failed to watch %s: %s", e.Name, err.Error())
					}
				}
				continue
			}
			// Handle create or modify events
			if e.Op&(fsnotify.Create|fsnotify.Write) != 0 {
				if am.handleFileEvent(e.Name) == metadata.ResourceTypeManifest {
					am.fireManifestChanged(e.Name)
				}
			}
			// Can't stat a deleted directory, so just try to remove it from the watch list.
			if e.Op&(fsnotify.Remove|fsnotify.Rename) != 0 {
				am.removeAsset(e.Name)
				_ = am.fsnotify.Remove(e.Name)
			}

		case err, ok := <-am.fsnotify.Errors:
			if !ok {
				return
			}
			core.LogError(err.Error())

		case <-am.done:
			am.fsnotify.Close()
			return
		}
	}
}

func (am *AssetManager) fireManifestChanged(path string) {
	if am.events == nil {
		return
	}
	core.LogInfo("manifest changed: %s", path)

	context := core.EventContext{}
	context.Data.C[0] = filepath.Clean(path)
	am.events.Fire(core.EVENT_CODE_MANIFEST_CHANGED, am, context)
}

// indexRecursive records every file under path without watching it.
func (am *AssetManager) indexRecursive(path string) error {
	return filepath.Walk(path, func(walkPath string, fi os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !fi.IsDir() {
			am.handleFileEvent(walkPath)
		}
		return nil
	})
}

// watchRecursive adds all directories under the given one to the watch list.
// A file created before its directory is watched is still indexed by the walk.
func (am *AssetManager) watchRecursive(path string) error {
	return filepath.Walk(path, func(walkPath string, fi os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if fi.IsDir() {
			return am.fsnotify.Add(walkPath)
		}
		am.handleFileEvent(walkPath)
		return nil
	})
}

// Handle the creation or modification of a file
func (am *AssetManager) handleFileEvent(path string) metadata.ResourceType {
	path = filepath.Clean(path)
	assetType := determineAssetType(path)
	if assetType == metadata.ResourceTypeNone {
		return assetType
	}

	am.mutex.Lock()
	defer am.mutex.Unlock()

	am.assets[path] = AssetInfo{
		Path:       path,
		Type:       assetType,
		LastLoaded: time.Now(),
	}
	return assetType
}

// Remove the asset from the index if it was deleted
func (am *AssetManager) removeAsset(path string) {
	am.mutex.Lock()
	defer am.mutex.Unlock()

	delete(am.assets, filepath.Clean(path))
}

func determineAssetType(path string) metadata.ResourceType {
	switch filepath.Ext(path) {
	case ".toml":
		return metadata.ResourceTypeManifest
	case ".geom":
		return metadata.ResourceTypeGeometry
	case ".png":
		return metadata.ResourceTypeImage
	case ".bin":
		return metadata.ResourceTypeBinary
	default:
		return metadata.ResourceTypeNone
	}
}
