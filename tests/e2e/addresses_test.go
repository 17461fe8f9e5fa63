package e2e

import (
	"context"
	"fmt"
	"net/http"
	"testing"
)

func Test_Addresses_FullFlow_Create_List_Default_Update_Delete(t *testing.T) {
	c := NewTestClient(t)
	ctx := context.Background()

	token, userID := registerAndLogin(t, c, ctx)

	//未認証は401
	resp, body := c.doJSON(ctx, t, http.MethodGet, "/addresses", "", nil)
	requireStatus(t, resp, http.StatusUnauthorized, body)

	//1件目（デフォルト）を作成
	resp, body = c.doJSON(ctx, t, http.MethodPost, "/addresses", token, validAddress())
	requireStatus(t, resp, http.StatusCreated, body)
	first := mustDecode[AddressDTO](t, body)
	if !first.IsDefault || first.UserID != userID {
		t.Fatalf("unexpected first address: %+v", first)
	}

	//2件目をデフォルトで作成 → 1件目のフラグが落ちる
	second := validAddress()
	second["line1"] = "Moi Avenue 2"
	resp, body = c.doJSON(ctx, t, http.MethodPost, "/addresses", token, second)
	requireStatus(t, resp, http.StatusCreated, body)
	created2 := mustDecode[AddressDTO](t, body)

	resp, body = c.doJSON(ctx, t, http.MethodGet, "/addresses", token, nil)
	requireStatus(t, resp, http.StatusOK, body)
	list := mustDecode[[]AddressDTO](t, body)
	if len(list) != 2 {
		t.Fatalf("len(list)=%d want=2", len(list))
	}
	assertSingleDefault(t, list, created2.ID)

	//1件目をdefaultに戻す
	resp, body = c.doJSON(ctx, t, http.MethodPost, fmt.Sprintf("/addresses/%d/default", first.ID), token, nil)
	requireStatus(t, resp, http.StatusOK, body)

	resp, body = c.doJSON(ctx, t, http.MethodGet, "/addresses", token, nil)
	requireStatus(t, resp, http.StatusOK, body)
	list = mustDecode[[]AddressDTO](t, body)
	assertSingleDefault(t, list, first.ID)

	//更新（内容変更、default維持）
	update := validAddress()
	update["city"] = "Kiambu"
	resp, body = c.doJSON(ctx, t, http.MethodPut, fmt.Sprintf("/addresses/%d", first.ID), token, update)
	requireStatus(t, resp, http.StatusOK, body)
	updated := mustDecode[AddressDTO](t, body)
	if updated.City != "Kiambu" {
		t.Fatalf("city=%q want 'Kiambu'", updated.City)
	}

	//削除
	resp, body = c.doJSON(ctx, t, http.MethodDelete, fmt.Sprintf("/addresses/%d", created2.ID), token, nil)
	requireStatus(t, resp, http.StatusOK, body)

	resp, body = c.doJSON(ctx, t, http.MethodGet, "/addresses", token, nil)
	requireStatus(t, resp, http.StatusOK, body)
	list = mustDecode[[]AddressDTO](t, body)
	if len(list) != 1 {
		t.Fatalf("len(list)=%d want=1", len(list))
	}
}

// 他人の住所は見えないし触れない
func Test_Addresses_OwnershipIsolation(t *testing.T) {
	c := NewTestClient(t)
	ctx := context.Background()

	tokenA, _ := registerAndLogin(t, c, ctx)

	resp, body := c.doJSON(ctx, t, http.MethodPost, "/addresses", tokenA, validAddress())
	requireStatus(t, resp, http.StatusCreated, body)
	addrA := mustDecode[AddressDTO](t, body)

	//別ユーザーで触ると404（存在ごと隠す）
	c2 := NewTestClient(t)
	tokenB, _ := registerAndLogin(t, c2, ctx)

	resp, body = c2.doJSON(ctx, t, http.MethodDelete, fmt.Sprintf("/addresses/%d", addrA.ID), tokenB, nil)
	requireStatus(t, resp, http.StatusNotFound, body)

	resp, body = c2.doJSON(ctx, t, http.MethodPut, fmt.Sprintf("/addresses/%d", addrA.ID), tokenB, validAddress())
	requireStatus(t, resp, http.StatusNotFound, body)
}

func Test_Addresses_Validation(t *testing.T) {
	c := NewTestClient(t)
	ctx := context.Background()

	token, _ := registerAndLogin(t, c, ctx)

	bad := validAddress()
	bad["phone_number"] = ""
	resp, body := c.doJSON(ctx, t, http.MethodPost, "/addresses", token, bad)
	requireStatus(t, resp, http.StatusBadRequest, body)
}

func assertSingleDefault(t *testing.T, list []AddressDTO, wantDefaultID int64) {
	t.Helper()
	defaults := 0
	for _, a := range list {
		if a.IsDefault {
			defaults++
			if a.ID != wantDefaultID {
				t.Fatalf("default is id=%d want=%d", a.ID, wantDefaultID)
			}
		}
	}
	if defaults != 1 {
		t.Fatalf("defaults=%d want=1", defaults)
	}
}
