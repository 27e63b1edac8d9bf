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

// Package text implements the styled document edited by jed.
// A document is a flat sequence of runes, each with one style tag.
// Offsets are rune offsets. Every mutation is reported to the
// registered listeners after it has been made; listeners must not
// change the document or its styles while they are being notified.
package text
