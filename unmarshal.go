package driverkit

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/tebeka/selenium"
)

// Unmarshaller lets a field type parse its own text.
type Unmarshaller interface {
	Unmarshal(s string) error
}

type UnmarshalMustBePointerError struct{}

func (err UnmarshalMustBePointerError) Error() string {
	return "must be a pointer to the value"
}

type UnmarshalUnexportedFieldError struct{}

func (err UnmarshalUnexportedFieldError) Error() string {
	return "field must be exported"
}

type UnmarshalFieldError struct {
	Field string
	Err   error
}

func (err UnmarshalFieldError) Error() string {
	e := err.Err
	fields := []string{err.Field}
	next, ok := e.(UnmarshalFieldError)
	for ok {
		fields = append(fields, next.Field)
		e = next.Err
		next, ok = e.(UnmarshalFieldError)
	}
	return fmt.Sprintf("%v: %v", strings.Join(fields, "."), e)
}

func stripchars(str, chr string) string {
	return strings.Map(func(r rune) rune {
		if !strings.ContainsRune(chr, r) {
			return r
		}
		return -1
	}, str)
}

// ExtractNumber pulls the first decimal number out of a text, tolerating
// group commas and non-breaking spaces around it.
func ExtractNumber(in string) (float64, error) {
	re := regexp.MustCompile(" *([0-9,]+([.][0-9]*)?).*")
	s := stripchars(re.ReplaceAllString(in, "$1"), ", 　")
	return strconv.ParseFloat(s, 64)
}

// UnmarshalOption controls text extraction for a value without tags of its own.
type UnmarshalOption struct {
	Attr string         // if nonempty, extracts attribute of element. otherwise, uses Text()
	Re   string         // Regular Expression. must contain one capture.
	Time string         // for time.Time only. parse with this format.
	Loc  *time.Location // time zone for parsing time.Time.
}

func parseInteger(s string) (int64, error) {
	var i int64
	_, err := fmt.Sscanf(strings.ReplaceAll(strings.TrimSpace(s), ",", ""), "%d", &i)
	return i, err
}

func unmarshalValue(value reflect.Value, sel *goquery.Selection, opt UnmarshalOption) error {
	if !value.CanSet() {
		return errors.New("value must CanSet")
	}

	type pair struct {
		Sel  *goquery.Selection
		Text string
	}
	selected := make([]pair, 0, sel.Length())
	for i := 0; i < sel.Length(); i++ {
		j := sel.Eq(i)

		var s string
		if opt.Attr != "" {
			w, ok := j.Attr(opt.Attr)
			if !ok {
				continue
			}
			s = w
		} else {
			s = j.Text()
		}

		if opt.Re != "" {
			re, err := regexp.Compile(opt.Re)
			if err != nil {
				return fmt.Errorf("re:%#v: %v", opt.Re, err)
			}
			submatch := re.FindStringSubmatch(s)
			n := len(submatch) - 1
			if n == -1 {
				continue
			} else if n != 1 {
				return fmt.Errorf("re:%#v: matched count of the regular expression is %d, should be 0 or 1, for text %#v", opt.Re, n, s)
			}
			s = submatch[1]
		}

		selected = append(selected, pair{j, s})
	}

	if value.Kind() == reflect.Slice {
		rv := reflect.MakeSlice(value.Type(), len(selected), len(selected))
		for i := 0; i < len(selected); i++ {
			err := unmarshalValueOne(rv.Index(i), selected[i].Sel, selected[i].Text, opt)
			if err != nil {
				return fmt.Errorf("#%d: %v", i, err)
			}
		}
		value.Set(rv)
		return nil
	}

	if value.Kind() == reflect.Ptr {
		if len(selected) == 0 {
			value.Set(reflect.Zero(value.Type()))
			return nil
		}
		newValue := reflect.New(value.Type().Elem())
		value.Set(newValue)
		value = newValue.Elem()
	}

	if len(selected) != 1 {
		return fmt.Errorf("length(%v) != 1", len(selected))
	}

	return unmarshalValueOne(value, selected[0].Sel, selected[0].Text, opt)
}

func unmarshalValueOne(value reflect.Value, sel *goquery.Selection, s string, opt UnmarshalOption) error {
	switch value.Interface().(type) {
	case time.Time:
		if opt.Time == "" {
			return fmt.Errorf("time.Time: time tag is required")
		}
		t, err := time.ParseInLocation(opt.Time, s, opt.Loc)
		if err != nil {
			return err
		}
		value.Set(reflect.ValueOf(t))

	default:
		if opt.Time != "" {
			return fmt.Errorf("`time` tag must be empty unless time.Time")
		}
		if !value.CanAddr() {
			return fmt.Errorf("failed CanAddr: %v, %v", value, value.Type())
		}

		if inf, ok := value.Addr().Interface().(Unmarshaller); ok {
			return inf.Unmarshal(s)
		}

		if value.Kind() == reflect.Struct {
			return unmarshalStruct(value, sel, opt)
		}

		switch value.Interface().(type) {
		case string:
			value.SetString(s)

		case int, int8, int16, int32, int64:
			i, err := parseInteger(s)
			if err != nil {
				return err
			}
			value.SetInt(i)

		case uint, uint8, uint16, uint32, uint64:
			i, err := parseInteger(s)
			if err != nil {
				return err
			}
			if i < 0 {
				return fmt.Errorf("negative value %v for unsigned field", i)
			}
			value.SetUint(uint64(i))

		case float32, float64:
			f, err := ExtractNumber(s)
			if err != nil {
				return err
			}
			value.SetFloat(f)

		default:
			return fmt.Errorf("unknown type %v", reflect.TypeOf(value))
		}
	}
	return nil
}

func unmarshalStruct(value reflect.Value, sel *goquery.Selection, opt UnmarshalOption) error {
	if opt.Re != "" {
		return fmt.Errorf("`re` tag must be empty for struct")
	}
	if opt.Attr != "" {
		return fmt.Errorf("`attr` tag must be empty for struct")
	}

	const (
		findTag = "find"
		attrTag = "attr"
		timeTag = "time"
		reTag   = "re"
	)

	vt := value.Type()
	for i := 0; i < vt.NumField(); i++ {
		fieldType := vt.Field(i)
		fieldValue := value.Field(i)

		if fieldType.PkgPath != "" {
			return UnmarshalFieldError{
				fieldType.Name,
				UnmarshalUnexportedFieldError{},
			}
		}

		selected := sel
		if selector := fieldType.Tag.Get(findTag); selector != "" {
			selected = sel.Find(selector)
		}

		fieldOpt := UnmarshalOption{
			Attr: fieldType.Tag.Get(attrTag),
			Time: fieldType.Tag.Get(timeTag),
			Re:   fieldType.Tag.Get(reTag),
			Loc:  opt.Loc,
		}

		if err := unmarshalValue(fieldValue, selected, fieldOpt); err != nil {
			return UnmarshalFieldError{
				fieldType.Name,
				err,
			}
		}
	}
	return nil
}

// Unmarshal parses selection and stores to v.
// if v is a struct, each field may specify following tags.
//   - `find` tag with CSS selector to specify sub element.
//   - `attr` tag with attribute name to get a text. if this tag not exists, get a text from text element.
//   - `re` tag with regular expression, use only matched substring from a text.
//   - `time` tag with time format to parse for time.Time.
func Unmarshal(v interface{}, selection *goquery.Selection, opt UnmarshalOption) error {
	if opt.Loc == nil {
		opt.Loc = time.UTC
	}

	ht := reflect.TypeOf(v)
	if ht == nil || ht.Kind() != reflect.Ptr {
		return UnmarshalMustBePointerError{}
	}

	return unmarshalValue(reflect.ValueOf(v).Elem(), selection, opt)
}

// UnmarshalElement parses the HTML of one located element and stores the
// extracted values to v, using the same tags as Unmarshal.
func UnmarshalElement(element selenium.WebElement, v interface{}, opt UnmarshalOption) error {
	html, err := element.GetAttribute("outerHTML")
	if err != nil {
		return err
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return err
	}
	return Unmarshal(v, doc.Find("body").Children().First(), opt)
}
