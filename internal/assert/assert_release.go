// +build !debug

//
// edaxgo - an Othello engine in GO, built in the idiom of FrankyGo
//
// MIT License
//
// Copyright (c) 2018-2020 Frank Kopp
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.
//

// Package assert lets search and board code state invariants inline without
// any runtime cost in a release build: Assert is a no-op here, and the
// compiler eliminates an `if assert.DEBUG { ... }`-guarded call entirely
// since DEBUG is a const.
package assert

// DEBUG controls whether Assert calls are compiled to do anything.
const DEBUG = false

// Assert panics with msg (formatted like fmt.Sprintf) if test is false.
// Callers should still guard with `if assert.DEBUG { assert.Assert(...) }`
// because Go evaluates a...interface{} arguments even when Assert itself
// is a no-op.
func Assert(test bool, msg string, a ...interface{}) {}
