/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"slidedeck/internal/domain"
)

// CrashDirName holds crash reports and emergency deck snapshots under the data dir.
const CrashDirName = "crash"

// WriteCrashSnapshot writes slides to <dir>/crash/deck-<timestamp>.json,
// bypassing the configured backend. It returns the written path.
func WriteCrashSnapshot(dir string, slides domain.SlideList) (string, error) {
	if strings.TrimSpace(dir) == "" {
		return "", errors.New("storage: data dir is required")
	}
	cdir := filepath.Join(dir, CrashDirName)
	if err := os.MkdirAll(cdir, 0o755); err != nil {
		return "", fmt.Errorf("create crash dir: %w", err)
	}
	data, err := json.MarshalIndent(slides, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode crash snapshot: %w", err)
	}
	path := filepath.Join(cdir, "deck-"+time.Now().Format(backupStamp)+slotExt)
	if err := writeFileSync(path, data); err != nil {
		return "", fmt.Errorf("write crash snapshot: %w", err)
	}
	return path, nil
}
