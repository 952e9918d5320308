package render

// restoreScript is the fixed, bit-identical client-side script appended to
// every rendered snapshot document. It re-applies runtime-only DOM state
// captured as __playwright_* attribute markers: form values, checked/
// selected state, popovers, dialogs, shadow roots, custom-element
// registrations, adopted stylesheets, and scroll positions. It is never
// generated from trace data — keeping it a constant is what makes
// expected-HTML fixtures portable across implementations.
const restoreScript = `<script>
(function () {
  function restoreValues(root) {
    root.querySelectorAll('[__playwright_value_]').forEach(function (el) {
      if (el.type !== 'file') {
        el.value = el.getAttribute('__playwright_value_');
      }
      el.removeAttribute('__playwright_value_');
    });

    root.querySelectorAll('[__playwright_checked_]').forEach(function (el) {
      el.checked = el.getAttribute('__playwright_checked_') === 'true';
      el.removeAttribute('__playwright_checked_');
    });

    root.querySelectorAll('[__playwright_selected_]').forEach(function (el) {
      el.selected = el.getAttribute('__playwright_selected_') === 'true';
      el.removeAttribute('__playwright_selected_');
    });

    root.querySelectorAll('[__playwright_popover_open_]').forEach(function (el) {
      try { el.showPopover(); } catch (e) {}
      el.removeAttribute('__playwright_popover_open_');
    });

    root.querySelectorAll('[__playwright_dialog_open_]').forEach(function (el) {
      var marker = el.getAttribute('__playwright_dialog_open_');
      try {
        if (marker === 'modal') { el.showModal(); } else { el.show(); }
      } catch (e) {}
      el.removeAttribute('__playwright_dialog_open_');
    });

    root.querySelectorAll('template[__playwright_shadow_root_]').forEach(function (template) {
      var parent = template.parentElement;
      if (!parent) return;
      var shadow = parent.attachShadow({ mode: 'open' });
      shadow.appendChild(template.content);
      template.remove();
      restoreValues(shadow);
    });

    if (root === document) {
      var customElementsAttr = document.body && document.body.getAttribute('__playwright_custom_elements_');
      if (customElementsAttr) {
        customElementsAttr.split(',').forEach(function (name) {
          name = name.trim();
          if (!name || customElements.get(name)) return;
          try {
            customElements.define(name, class extends HTMLElement {});
          } catch (e) {}
        });
      }
    }

    root.querySelectorAll('template[__playwright_style_sheet_]').forEach(function (template) {
      var sheet = new CSSStyleSheet();
      try {
        sheet.replaceSync(template.getAttribute('__playwright_style_sheet_'));
        var owner = root === document ? document : root;
        owner.adoptedStyleSheets = owner.adoptedStyleSheets.concat([sheet]);
      } catch (e) {}
      template.remove();
    });
  }

  restoreValues(document);

  window.addEventListener('load', function () {
    document.querySelectorAll('[__playwright_scroll_top_]').forEach(function (el) {
      el.scrollTop = parseFloat(el.getAttribute('__playwright_scroll_top_'));
      el.removeAttribute('__playwright_scroll_top_');
    });
    document.querySelectorAll('[__playwright_scroll_left_]').forEach(function (el) {
      el.scrollLeft = parseFloat(el.getAttribute('__playwright_scroll_left_'));
      el.removeAttribute('__playwright_scroll_left_');
    });
  });
})();
</script>`
