//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//   http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//

// Package editor implements the core text editing functions of jed.
// An editor manages numbered buffers. Each buffer holds a document
// that is kept highlighted as it changes, a cursor, and the file it
// was read from. Buffer 0 is a read-only buffer for command output.
// All editor methods run on the UI goroutine.
package editor
