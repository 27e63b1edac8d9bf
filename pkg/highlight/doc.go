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

// Package highlight colors keywords incrementally as a document is edited.
//
// A Highlighter listens to a document. For every insertion or removal it
// widens the edit to whole words, classifies each word against a fixed
// keyword set and queues one style request per word or separator. The
// requests are applied by a later task on the UI loop, never from inside
// the notification that produced them.
package highlight
