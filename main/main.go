package main

import (
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/rawbytedev/slotwire"
	"github.com/rawbytedev/slotwire/pkg/recframe"
	"github.com/rawbytedev/slotwire/pkg/structcodec"
	"github.com/rawbytedev/slotwire/pkg/zrec"
)

func main() {
	logger := slotwire.NewLogger(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))

	// Hand-built record against an explicit layout.
	layout, err := zrec.NewLayout("demo.User", []zrec.Field{
		{Name: "ID", Kind: zrec.Uint64},
		{Name: "Name", Kind: zrec.String},
		{Name: "Bio", Kind: zrec.String},
	})
	if err != nil {
		log.Fatal(err)
	}
	layout = zrec.Register(layout)

	id, _ := layout.Field("ID")
	name, _ := layout.Field("Name")
	bio, _ := layout.Field("Bio")

	b := zrec.NewBuilder(layout)
	b.WriteUint64(id.Offset, 12345)
	b.WriteString(name.Slot, "John Doe")
	b.WriteString(bio.Slot, "likes long walks through contiguous memory regions")
	buf := b.Finish()

	fmt.Printf("record: %d bytes, format=%s\n", len(buf), slotwire.Detect(buf))

	view, err := zrec.FromBytes(buf, layout)
	if err != nil {
		log.Fatal(err)
	}
	n, _ := view.Variable(name.Slot)
	fmt.Printf("id=%d name=%q heap=%v\n", view.Uint64At(id.Offset), n, view.Header().HasHeap())

	// Same record through the struct codec.
	type User struct {
		ID   uint64
		Name string
		Bio  string
	}
	codec := structcodec.New(structcodec.Options{}, logger)
	data, err := codec.Marshal(User{ID: 12345, Name: "John Doe", Bio: "short"})
	if err != nil {
		log.Fatal(err)
	}
	var back User
	if err := codec.Unmarshal(data, &back); err != nil {
		log.Fatal(err)
	}
	fmt.Printf("struct round-trip: %+v\n", back)

	// Framed for transport.
	frame, err := recframe.Encode(buf, recframe.CodecZstd)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("framed: %d -> %d bytes\n", len(buf), len(frame))
}
