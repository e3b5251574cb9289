/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package storage implements deck persistence.
// A Gateway serializes the slide list to one named slot of a key-value backend (KV).
// Backends: FileKV writes one JSON file per slot with transactional writes and timestamped backups;
// SQLiteKV keeps slots in an embedded SQLite database with a bounded history of overwritten values;
// MemoryKV keeps everything in process for ephemeral sessions and tests.
// The gateway does not interpret what it loads; Decode validates a raw slot against the embedded JSON schema.
package storage
