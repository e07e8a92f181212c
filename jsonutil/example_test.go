package jsonutil_test

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/drblury/docweaver/jsonutil"
)

func Example() {
	type note struct {
		Title  string `json:"title"`
		Pinned bool   `json:"pinned"`
		Rev    int    `json:"rev"`
	}

	in := note{Title: "groceries", Pinned: true, Rev: 3}

	data, _ := jsonutil.Marshal(in)
	fmt.Println(string(data))

	var decoded note
	_ = jsonutil.Unmarshal(data, &decoded)
	fmt.Println(decoded.Rev)

	buf := &bytes.Buffer{}
	_ = jsonutil.Encode(buf, in)

	var streamed note
	_ = jsonutil.Decode(buf, &streamed)
	fmt.Println(streamed.Title)

	// Output:
	// {"title":"groceries","pinned":true,"rev":3}
	// 3
	// groceries
}

func ExampleMarshalIndent() {
	payload := map[string]any{"message": "Note created"}

	data, err := jsonutil.MarshalIndent(payload, "", "  ")
	if err != nil {
		fmt.Println("marshal error:", err)
		return
	}
	fmt.Println(strings.TrimSpace(string(data)))

	// Output:
	// {
	//   "message": "Note created"
	// }
}

func ExampleEncode_slice() {
	buf := &bytes.Buffer{}
	if err := jsonutil.Encode(buf, []int{1, 2, 3}); err != nil {
		fmt.Println("encode error:", err)
		return
	}
	fmt.Println(strings.TrimSpace(buf.String()))

	var decoded []int
	if err := jsonutil.Decode(bytes.NewReader(buf.Bytes()), &decoded); err != nil {
		fmt.Println("decode error:", err)
		return
	}
	fmt.Println(len(decoded))

	// Output:
	// [1,2,3]
	// 3
}
