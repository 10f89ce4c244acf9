package dispatch

import (
	"context"

	"github.com/aperturerobotics/go-wasm-macro-host/tokenstream"
)

// One statically compiled stub per slot per extension kind. The stubs carry
// no state of their own: each forwards to the binding written into its table
// index. Mechanical by construction; keep in sync with Capacity.

func derive0(ctx context.Context, input tokenstream.Stream) (tokenstream.Stream, error) {
	return expandDerive(0, ctx, input)
}

func derive1(ctx context.Context, input tokenstream.Stream) (tokenstream.Stream, error) {
	return expandDerive(1, ctx, input)
}

func derive2(ctx context.Context, input tokenstream.Stream) (tokenstream.Stream, error) {
	return expandDerive(2, ctx, input)
}

func derive3(ctx context.Context, input tokenstream.Stream) (tokenstream.Stream, error) {
	return expandDerive(3, ctx, input)
}

func derive4(ctx context.Context, input tokenstream.Stream) (tokenstream.Stream, error) {
	return expandDerive(4, ctx, input)
}

func derive5(ctx context.Context, input tokenstream.Stream) (tokenstream.Stream, error) {
	return expandDerive(5, ctx, input)
}

func derive6(ctx context.Context, input tokenstream.Stream) (tokenstream.Stream, error) {
	return expandDerive(6, ctx, input)
}

func derive7(ctx context.Context, input tokenstream.Stream) (tokenstream.Stream, error) {
	return expandDerive(7, ctx, input)
}

func derive8(ctx context.Context, input tokenstream.Stream) (tokenstream.Stream, error) {
	return expandDerive(8, ctx, input)
}

func derive9(ctx context.Context, input tokenstream.Stream) (tokenstream.Stream, error) {
	return expandDerive(9, ctx, input)
}

func derive10(ctx context.Context, input tokenstream.Stream) (tokenstream.Stream, error) {
	return expandDerive(10, ctx, input)
}

func derive11(ctx context.Context, input tokenstream.Stream) (tokenstream.Stream, error) {
	return expandDerive(11, ctx, input)
}

func derive12(ctx context.Context, input tokenstream.Stream) (tokenstream.Stream, error) {
	return expandDerive(12, ctx, input)
}

func derive13(ctx context.Context, input tokenstream.Stream) (tokenstream.Stream, error) {
	return expandDerive(13, ctx, input)
}

func derive14(ctx context.Context, input tokenstream.Stream) (tokenstream.Stream, error) {
	return expandDerive(14, ctx, input)
}

func derive15(ctx context.Context, input tokenstream.Stream) (tokenstream.Stream, error) {
	return expandDerive(15, ctx, input)
}

func derive16(ctx context.Context, input tokenstream.Stream) (tokenstream.Stream, error) {
	return expandDerive(16, ctx, input)
}

func derive17(ctx context.Context, input tokenstream.Stream) (tokenstream.Stream, error) {
	return expandDerive(17, ctx, input)
}

func derive18(ctx context.Context, input tokenstream.Stream) (tokenstream.Stream, error) {
	return expandDerive(18, ctx, input)
}

func derive19(ctx context.Context, input tokenstream.Stream) (tokenstream.Stream, error) {
	return expandDerive(19, ctx, input)
}

func derive20(ctx context.Context, input tokenstream.Stream) (tokenstream.Stream, error) {
	return expandDerive(20, ctx, input)
}

func derive21(ctx context.Context, input tokenstream.Stream) (tokenstream.Stream, error) {
	return expandDerive(21, ctx, input)
}

func derive22(ctx context.Context, input tokenstream.Stream) (tokenstream.Stream, error) {
	return expandDerive(22, ctx, input)
}

func derive23(ctx context.Context, input tokenstream.Stream) (tokenstream.Stream, error) {
	return expandDerive(23, ctx, input)
}

func derive24(ctx context.Context, input tokenstream.Stream) (tokenstream.Stream, error) {
	return expandDerive(24, ctx, input)
}

func derive25(ctx context.Context, input tokenstream.Stream) (tokenstream.Stream, error) {
	return expandDerive(25, ctx, input)
}

func derive26(ctx context.Context, input tokenstream.Stream) (tokenstream.Stream, error) {
	return expandDerive(26, ctx, input)
}

func derive27(ctx context.Context, input tokenstream.Stream) (tokenstream.Stream, error) {
	return expandDerive(27, ctx, input)
}

func derive28(ctx context.Context, input tokenstream.Stream) (tokenstream.Stream, error) {
	return expandDerive(28, ctx, input)
}

func derive29(ctx context.Context, input tokenstream.Stream) (tokenstream.Stream, error) {
	return expandDerive(29, ctx, input)
}

func derive30(ctx context.Context, input tokenstream.Stream) (tokenstream.Stream, error) {
	return expandDerive(30, ctx, input)
}

func derive31(ctx context.Context, input tokenstream.Stream) (tokenstream.Stream, error) {
	return expandDerive(31, ctx, input)
}

func attr0(ctx context.Context, args, item tokenstream.Stream) (tokenstream.Stream, error) {
	return expandAttr(0, ctx, args, item)
}

func attr1(ctx context.Context, args, item tokenstream.Stream) (tokenstream.Stream, error) {
	return expandAttr(1, ctx, args, item)
}

func attr2(ctx context.Context, args, item tokenstream.Stream) (tokenstream.Stream, error) {
	return expandAttr(2, ctx, args, item)
}

func attr3(ctx context.Context, args, item tokenstream.Stream) (tokenstream.Stream, error) {
	return expandAttr(3, ctx, args, item)
}

func attr4(ctx context.Context, args, item tokenstream.Stream) (tokenstream.Stream, error) {
	return expandAttr(4, ctx, args, item)
}

func attr5(ctx context.Context, args, item tokenstream.Stream) (tokenstream.Stream, error) {
	return expandAttr(5, ctx, args, item)
}

func attr6(ctx context.Context, args, item tokenstream.Stream) (tokenstream.Stream, error) {
	return expandAttr(6, ctx, args, item)
}

func attr7(ctx context.Context, args, item tokenstream.Stream) (tokenstream.Stream, error) {
	return expandAttr(7, ctx, args, item)
}

func attr8(ctx context.Context, args, item tokenstream.Stream) (tokenstream.Stream, error) {
	return expandAttr(8, ctx, args, item)
}

func attr9(ctx context.Context, args, item tokenstream.Stream) (tokenstream.Stream, error) {
	return expandAttr(9, ctx, args, item)
}

func attr10(ctx context.Context, args, item tokenstream.Stream) (tokenstream.Stream, error) {
	return expandAttr(10, ctx, args, item)
}

func attr11(ctx context.Context, args, item tokenstream.Stream) (tokenstream.Stream, error) {
	return expandAttr(11, ctx, args, item)
}

func attr12(ctx context.Context, args, item tokenstream.Stream) (tokenstream.Stream, error) {
	return expandAttr(12, ctx, args, item)
}

func attr13(ctx context.Context, args, item tokenstream.Stream) (tokenstream.Stream, error) {
	return expandAttr(13, ctx, args, item)
}

func attr14(ctx context.Context, args, item tokenstream.Stream) (tokenstream.Stream, error) {
	return expandAttr(14, ctx, args, item)
}

func attr15(ctx context.Context, args, item tokenstream.Stream) (tokenstream.Stream, error) {
	return expandAttr(15, ctx, args, item)
}

func attr16(ctx context.Context, args, item tokenstream.Stream) (tokenstream.Stream, error) {
	return expandAttr(16, ctx, args, item)
}

func attr17(ctx context.Context, args, item tokenstream.Stream) (tokenstream.Stream, error) {
	return expandAttr(17, ctx, args, item)
}

func attr18(ctx context.Context, args, item tokenstream.Stream) (tokenstream.Stream, error) {
	return expandAttr(18, ctx, args, item)
}

func attr19(ctx context.Context, args, item tokenstream.Stream) (tokenstream.Stream, error) {
	return expandAttr(19, ctx, args, item)
}

func attr20(ctx context.Context, args, item tokenstream.Stream) (tokenstream.Stream, error) {
	return expandAttr(20, ctx, args, item)
}

func attr21(ctx context.Context, args, item tokenstream.Stream) (tokenstream.Stream, error) {
	return expandAttr(21, ctx, args, item)
}

func attr22(ctx context.Context, args, item tokenstream.Stream) (tokenstream.Stream, error) {
	return expandAttr(22, ctx, args, item)
}

func attr23(ctx context.Context, args, item tokenstream.Stream) (tokenstream.Stream, error) {
	return expandAttr(23, ctx, args, item)
}

func attr24(ctx context.Context, args, item tokenstream.Stream) (tokenstream.Stream, error) {
	return expandAttr(24, ctx, args, item)
}

func attr25(ctx context.Context, args, item tokenstream.Stream) (tokenstream.Stream, error) {
	return expandAttr(25, ctx, args, item)
}

func attr26(ctx context.Context, args, item tokenstream.Stream) (tokenstream.Stream, error) {
	return expandAttr(26, ctx, args, item)
}

func attr27(ctx context.Context, args, item tokenstream.Stream) (tokenstream.Stream, error) {
	return expandAttr(27, ctx, args, item)
}

func attr28(ctx context.Context, args, item tokenstream.Stream) (tokenstream.Stream, error) {
	return expandAttr(28, ctx, args, item)
}

func attr29(ctx context.Context, args, item tokenstream.Stream) (tokenstream.Stream, error) {
	return expandAttr(29, ctx, args, item)
}

func attr30(ctx context.Context, args, item tokenstream.Stream) (tokenstream.Stream, error) {
	return expandAttr(30, ctx, args, item)
}

func attr31(ctx context.Context, args, item tokenstream.Stream) (tokenstream.Stream, error) {
	return expandAttr(31, ctx, args, item)
}

func bang0(ctx context.Context, input tokenstream.Stream) (tokenstream.Stream, error) {
	return expandBang(0, ctx, input)
}

func bang1(ctx context.Context, input tokenstream.Stream) (tokenstream.Stream, error) {
	return expandBang(1, ctx, input)
}

func bang2(ctx context.Context, input tokenstream.Stream) (tokenstream.Stream, error) {
	return expandBang(2, ctx, input)
}

func bang3(ctx context.Context, input tokenstream.Stream) (tokenstream.Stream, error) {
	return expandBang(3, ctx, input)
}

func bang4(ctx context.Context, input tokenstream.Stream) (tokenstream.Stream, error) {
	return expandBang(4, ctx, input)
}

func bang5(ctx context.Context, input tokenstream.Stream) (tokenstream.Stream, error) {
	return expandBang(5, ctx, input)
}

func bang6(ctx context.Context, input tokenstream.Stream) (tokenstream.Stream, error) {
	return expandBang(6, ctx, input)
}

func bang7(ctx context.Context, input tokenstream.Stream) (tokenstream.Stream, error) {
	return expandBang(7, ctx, input)
}

func bang8(ctx context.Context, input tokenstream.Stream) (tokenstream.Stream, error) {
	return expandBang(8, ctx, input)
}

func bang9(ctx context.Context, input tokenstream.Stream) (tokenstream.Stream, error) {
	return expandBang(9, ctx, input)
}

func bang10(ctx context.Context, input tokenstream.Stream) (tokenstream.Stream, error) {
	return expandBang(10, ctx, input)
}

func bang11(ctx context.Context, input tokenstream.Stream) (tokenstream.Stream, error) {
	return expandBang(11, ctx, input)
}

func bang12(ctx context.Context, input tokenstream.Stream) (tokenstream.Stream, error) {
	return expandBang(12, ctx, input)
}

func bang13(ctx context.Context, input tokenstream.Stream) (tokenstream.Stream, error) {
	return expandBang(13, ctx, input)
}

func bang14(ctx context.Context, input tokenstream.Stream) (tokenstream.Stream, error) {
	return expandBang(14, ctx, input)
}

func bang15(ctx context.Context, input tokenstream.Stream) (tokenstream.Stream, error) {
	return expandBang(15, ctx, input)
}

func bang16(ctx context.Context, input tokenstream.Stream) (tokenstream.Stream, error) {
	return expandBang(16, ctx, input)
}

func bang17(ctx context.Context, input tokenstream.Stream) (tokenstream.Stream, error) {
	return expandBang(17, ctx, input)
}

func bang18(ctx context.Context, input tokenstream.Stream) (tokenstream.Stream, error) {
	return expandBang(18, ctx, input)
}

func bang19(ctx context.Context, input tokenstream.Stream) (tokenstream.Stream, error) {
	return expandBang(19, ctx, input)
}

func bang20(ctx context.Context, input tokenstream.Stream) (tokenstream.Stream, error) {
	return expandBang(20, ctx, input)
}

func bang21(ctx context.Context, input tokenstream.Stream) (tokenstream.Stream, error) {
	return expandBang(21, ctx, input)
}

func bang22(ctx context.Context, input tokenstream.Stream) (tokenstream.Stream, error) {
	return expandBang(22, ctx, input)
}

func bang23(ctx context.Context, input tokenstream.Stream) (tokenstream.Stream, error) {
	return expandBang(23, ctx, input)
}

func bang24(ctx context.Context, input tokenstream.Stream) (tokenstream.Stream, error) {
	return expandBang(24, ctx, input)
}

func bang25(ctx context.Context, input tokenstream.Stream) (tokenstream.Stream, error) {
	return expandBang(25, ctx, input)
}

func bang26(ctx context.Context, input tokenstream.Stream) (tokenstream.Stream, error) {
	return expandBang(26, ctx, input)
}

func bang27(ctx context.Context, input tokenstream.Stream) (tokenstream.Stream, error) {
	return expandBang(27, ctx, input)
}

func bang28(ctx context.Context, input tokenstream.Stream) (tokenstream.Stream, error) {
	return expandBang(28, ctx, input)
}

func bang29(ctx context.Context, input tokenstream.Stream) (tokenstream.Stream, error) {
	return expandBang(29, ctx, input)
}

func bang30(ctx context.Context, input tokenstream.Stream) (tokenstream.Stream, error) {
	return expandBang(30, ctx, input)
}

func bang31(ctx context.Context, input tokenstream.Stream) (tokenstream.Stream, error) {
	return expandBang(31, ctx, input)
}

var deriveStubs = [Capacity]DeriveExpander{
	derive0, derive1, derive2, derive3,
	derive4, derive5, derive6, derive7,
	derive8, derive9, derive10, derive11,
	derive12, derive13, derive14, derive15,
	derive16, derive17, derive18, derive19,
	derive20, derive21, derive22, derive23,
	derive24, derive25, derive26, derive27,
	derive28, derive29, derive30, derive31,
}

var attrStubs = [Capacity]AttrExpander{
	attr0, attr1, attr2, attr3,
	attr4, attr5, attr6, attr7,
	attr8, attr9, attr10, attr11,
	attr12, attr13, attr14, attr15,
	attr16, attr17, attr18, attr19,
	attr20, attr21, attr22, attr23,
	attr24, attr25, attr26, attr27,
	attr28, attr29, attr30, attr31,
}

var bangStubs = [Capacity]BangExpander{
	bang0, bang1, bang2, bang3,
	bang4, bang5, bang6, bang7,
	bang8, bang9, bang10, bang11,
	bang12, bang13, bang14, bang15,
	bang16, bang17, bang18, bang19,
	bang20, bang21, bang22, bang23,
	bang24, bang25, bang26, bang27,
	bang28, bang29, bang30, bang31,
}
