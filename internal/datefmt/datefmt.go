// Package datefmt はmoment.js形式の日付フォーマットをGoのレイアウトに変換する
//
// 対応するのは数値系のトークンと午前午後、タイムゾーンのみ。
// トークン以外に使える文字は空白と - / : . , T に限る。
package datefmt

import (
	"strings"
	"unicode/utf8"

	"github.com/cockroachdb/errors"
)

// ErrUnsupportedToken は変換できないトークンや文字を含むフォーマットを表す
var ErrUnsupportedToken = errors.New("unsupported format token")

// tokens は先頭から順に照合するため、長いトークンを先に置く
var tokens = []struct {
	token  string
	layout string
}{
	{"YYYY", "2006"},
	{"SSS", "000"},
	{"YY", "06"},
	{"MM", "01"},
	{"DD", "02"},
	{"HH", "15"},
	{"hh", "03"},
	{"mm", "04"},
	{"ss", "05"},
	{"ZZ", "-0700"},
	{"Z", "-07:00"},
	{"A", "PM"},
	{"a", "pm"},
}

const literals = " -/:.,T"

// Layout はフォーマットをtime.Formatに渡せるレイアウトに変換する
func Layout(format string) (string, error) {
	var b strings.Builder

	rest := format
	for rest != "" {
		token, layout, ok := match(rest)
		if !ok {
			r, size := utf8.DecodeRuneInString(rest)
			if !strings.ContainsRune(literals, r) {
				return "", errors.Wrapf(ErrUnsupportedToken, "%q", string(r))
			}
			b.WriteRune(r)
			rest = rest[size:]
			continue
		}

		rest = rest[len(token):]
		if token == "SSS" && !fractionPosition(b.String(), rest) {
			return "", errors.Wrap(ErrUnsupportedToken, `"SSS" must directly follow "." or ","`)
		}
		b.WriteString(layout)
	}

	return b.String(), nil
}

func match(s string) (token, layout string, ok bool) {
	for _, t := range tokens {
		if strings.HasPrefix(s, t.token) {
			return t.token, t.layout, true
		}
	}
	return "", "", false
}

// fractionPosition は小数秒を置ける位置かどうかを返す
// Goのレイアウトでは区切り文字の直後にあり、直後に数字が続かない場合だけ小数秒になる
func fractionPosition(before, after string) bool {
	if !strings.HasSuffix(before, ".") && !strings.HasSuffix(before, ",") {
		return false
	}
	if after == "" {
		return true
	}
	_, _, ok := match(after)
	return !ok
}
