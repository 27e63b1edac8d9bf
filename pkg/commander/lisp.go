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

package commander

import (
	"errors"
	"fmt"

	"github.com/steelseries/golisp"
	"go.uber.org/zap"
)

// current is the commander that lisp primitives act on.
var current *Commander

func init() {
	golisp.MakePrimitiveFunction("buffer-insert", "1", InsertImpl)
	golisp.MakePrimitiveFunction("buffer-find", "1", FindImpl)
	golisp.MakePrimitiveFunction("buffer-replace-all", "2", ReplaceAllImpl)
	golisp.MakePrimitiveFunction("buffer-save", "0", SaveImpl)
	golisp.MakePrimitiveFunction("goto-line", "1", GotoLineImpl)
	golisp.MakePrimitiveFunction("buffer-text", "0", BufferTextImpl)
	golisp.MakePrimitiveFunction("java-keyword?", "1", KeywordPImpl)
}

func stringArg(name string, val *golisp.Data) (string, error) {
	if !golisp.StringP(val) {
		return "", fmt.Errorf("%s requires a string argument", name)
	}
	return golisp.StringValue(val), nil
}

func active() (*Commander, error) {
	if current == nil {
		return nil, errors.New("no editor")
	}
	return current, nil
}

func InsertImpl(args *golisp.Data, env *golisp.SymbolTableFrame) (result *golisp.Data, err error) {
	c, err := active()
	if err != nil {
		return nil, err
	}
	s, err := stringArg("buffer-insert", golisp.Car(args))
	if err != nil {
		return nil, err
	}
	if err := c.editor.InsertText(s); err != nil {
		return nil, err
	}
	return golisp.StringWithValue(s), nil
}

func FindImpl(args *golisp.Data, env *golisp.SymbolTableFrame) (result *golisp.Data, err error) {
	c, err := active()
	if err != nil {
		return nil, err
	}
	pattern, err := stringArg("buffer-find", golisp.Car(args))
	if err != nil {
		return nil, err
	}
	c.findText = pattern
	n, err := c.editor.Find(pattern)
	if err != nil {
		return nil, err
	}
	return golisp.IntegerWithValue(int64(n)), nil
}

func ReplaceAllImpl(args *golisp.Data, env *golisp.SymbolTableFrame) (result *golisp.Data, err error) {
	c, err := active()
	if err != nil {
		return nil, err
	}
	pattern, err := stringArg("buffer-replace-all", golisp.Car(args))
	if err != nil {
		return nil, err
	}
	replacement, err := stringArg("buffer-replace-all", golisp.Cadr(args))
	if err != nil {
		return nil, err
	}
	n, err := c.editor.ReplaceAll(pattern, replacement)
	if err != nil {
		return nil, err
	}
	return golisp.IntegerWithValue(int64(n)), nil
}

func SaveImpl(args *golisp.Data, env *golisp.SymbolTableFrame) (result *golisp.Data, err error) {
	c, err := active()
	if err != nil {
		return nil, err
	}
	if err := c.editor.Save(); err != nil {
		return nil, err
	}
	return golisp.StringWithValue(c.editor.GetFileName()), nil
}

func GotoLineImpl(args *golisp.Data, env *golisp.SymbolTableFrame) (result *golisp.Data, err error) {
	c, err := active()
	if err != nil {
		return nil, err
	}
	val := golisp.Car(args)
	if !golisp.IntegerP(val) {
		return nil, errors.New("goto-line requires an integer argument")
	}
	c.editor.MoveCursorToLine(int(golisp.IntegerValue(val)))
	return val, nil
}

func BufferTextImpl(args *golisp.Data, env *golisp.SymbolTableFrame) (result *golisp.Data, err error) {
	c, err := active()
	if err != nil {
		return nil, err
	}
	return golisp.StringWithValue(c.editor.Buffer().Text()), nil
}

func KeywordPImpl(args *golisp.Data, env *golisp.SymbolTableFrame) (result *golisp.Data, err error) {
	c, err := active()
	if err != nil {
		return nil, err
	}
	word, err := stringArg("java-keyword?", golisp.Car(args))
	if err != nil {
		return nil, err
	}
	return golisp.BooleanWithValue(c.editor.Keywords().Contains(word)), nil
}

// Eval evaluates a lisp expression, shows the result in the message
// bar and returns it.
func (c *Commander) Eval(expr string) string {
	c.message = c.parseEval(expr)
	return c.message
}

// EvalScript evaluates every expression in a script in order and returns
// the value of the last one.
func (c *Commander) EvalScript(src string) string {
	return c.Eval("(begin " + src + "\n)")
}

// parseEval evaluates a lisp expression and describes the result.
func (c *Commander) parseEval(command string) string {
	value, err := golisp.ParseAndEval(command)
	if err != nil {
		c.logger.Info("lisp error", zap.String("expr", command), zap.Error(err))
		return fmt.Sprintf("error: %v", err)
	}
	c.logger.Debug("lisp", zap.String("expr", command), zap.String("value", golisp.String(value)))
	return golisp.String(value)
}
