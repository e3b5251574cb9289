/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package deck holds the in-memory slide list and the navigation state.
//
// Store owns the authoritative SlideList. Every mutation produces a new list
// and is announced to subscribed observers; a Persister is the observer that
// writes each change through to storage. Navigator tracks the active index and
// the direction of the last successful move. Neither type is safe for
// concurrent use; both belong to the UI goroutine.
package deck
